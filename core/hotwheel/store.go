package hotwheel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/irsalhamdi/hotwheels-store/database"
	"github.com/jmoiron/sqlx"
)

var sortColumns = map[string]string{
	SortName:   "name",
	SortSeries: "series",
	SortPrice:  "price",
	SortYear:   "year",
}

const selectColumns = `id, name, series, color, year, price, image_url, created_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// listQuery builds the statement for q. q must already be validated; an
// unknown sort field falls back to name.
func listQuery(q Query) (string, []any) {
	var b strings.Builder
	var args []any

	b.WriteString("SELECT " + selectColumns + " FROM hotwheels")

	if strings.TrimSpace(q.Search) != "" {
		args = append(args, "%"+likeEscaper.Replace(q.Search)+"%")
		b.WriteString(" WHERE name ILIKE $1 OR series ILIKE $1 OR color ILIKE $1")
	}

	col, ok := sortColumns[q.Sort]
	if !ok {
		col = sortColumns[SortName]
	}
	dir := "ASC"
	if q.Order == OrderDesc {
		dir = "DESC"
	}
	fmt.Fprintf(&b, " ORDER BY %s %s, id ASC", col, dir)

	return b.String(), args
}

func List(ctx context.Context, db sqlx.QueryerContext, q Query) ([]Hotwheel, error) {
	stmt, args := listQuery(q)

	hws := []Hotwheel{}
	if err := sqlx.SelectContext(ctx, db, &hws, stmt, args...); err != nil {
		return nil, fmt.Errorf("selecting hotwheels: %w", err)
	}
	return hws, nil
}

func Fetch(ctx context.Context, db sqlx.QueryerContext, id string) (Hotwheel, error) {
	const q = `SELECT ` + selectColumns + ` FROM hotwheels WHERE id = $1`

	var hw Hotwheel
	if err := sqlx.GetContext(ctx, db, &hw, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Hotwheel{}, database.ErrDBNotFound
		}
		return Hotwheel{}, fmt.Errorf("selecting hotwheel[%s]: %w", id, err)
	}
	return hw, nil
}

func Count(ctx context.Context, db sqlx.QueryerContext) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, db, &n, `SELECT count(*) FROM hotwheels`); err != nil {
		return 0, fmt.Errorf("counting hotwheels: %w", err)
	}
	return n, nil
}
