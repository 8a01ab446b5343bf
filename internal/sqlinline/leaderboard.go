package sqlinline

const QTopUsersByPoints = `--sql c4e8a1f6-3b5d-4729-9c0e-8f2d7a6b3e51
select identifier, points
from users
order by points desc, identifier asc
limit $1;
`
