package sqlite

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const getToggleState = `-- name: GetToggleState :one
select layout from toggle_state where id = 1
`

func (q *Queries) GetToggleState(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, getToggleState)
	var layout int64
	err := row.Scan(&layout)
	return layout, err
}

const setToggleState = `-- name: SetToggleState :exec
insert into toggle_state (id, layout, updated_at)
values (1, ?, current_timestamp)
on conflict (id) do update set layout = excluded.layout, updated_at = excluded.updated_at
`

func (q *Queries) SetToggleState(ctx context.Context, layout int64) error {
	_, err := q.db.ExecContext(ctx, setToggleState, layout)
	return err
}

const dumpSchema = `-- name: DumpSchema :many
select sql from sqlite_master
where sql is not null and name not like 'sqlite_%'
order by case type when 'table' then 0 else 1 end, name
`

func (q *Queries) DumpSchema(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, dumpSchema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var statement string
		if err := rows.Scan(&statement); err != nil {
			return nil, err
		}
		items = append(items, statement)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
