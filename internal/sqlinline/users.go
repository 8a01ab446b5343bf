// Package sqlinline holds the service's SQL statements as marker-tagged
// constants. The leading --sql marker line identifies each statement in logs
// and is stripped by infra.SQLRunner before execution.
package sqlinline

const QSelectUserByIdentifier = `--sql 3f1c9a2e-5b7d-4c1e-9a3f-2d8e6b4a1c05
select
  identifier,
  points,
  daily_counts,
  coalesce(daily_limits, '{}'::jsonb),
  coalesce(to_char(last_reset_day, 'YYYY-MM-DD'), ''),
  welcome_seen,
  created_at,
  updated_at
from users
where identifier = $1;
`

const QApplyPointsDelta = `--sql 8d42f7b1-0a6c-4e92-b5d8-7c3e1f9a6b24
insert into users (identifier, points)
values ($1, greatest($2, 0))
on conflict (identifier) do update
set points = greatest(users.points + $2, 0),
    updated_at = now()
returning
  identifier,
  points,
  daily_counts,
  coalesce(daily_limits, '{}'::jsonb),
  coalesce(to_char(last_reset_day, 'YYYY-MM-DD'), ''),
  welcome_seen,
  created_at,
  updated_at;
`

const QSaveDailyCounts = `--sql b91e3c57-6d2f-4a08-8e71-f4a9c2d5e830
insert into users (identifier, daily_counts, last_reset_day)
values ($1, $2::jsonb, $3::date)
on conflict (identifier) do update
set daily_counts = excluded.daily_counts,
    last_reset_day = excluded.last_reset_day,
    updated_at = now();
`

const QMarkWelcomeSeen = `--sql 5a78d0c3-92e4-4b6f-a1d7-3c8b5e2f9046
insert into users (identifier, welcome_seen)
values ($1, true)
on conflict (identifier) do update
set welcome_seen = true,
    updated_at = now();
`
