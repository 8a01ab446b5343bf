package sqlinline

const QStatsSummary = `--sql 7b3d5e90-1f8a-4c26-b7e4-a52c9d0f6183
select
  (select count(*) from users),
  coalesce((select sum(points) from users), 0),
  (select count(*) from users where last_reset_day = current_date);
`
