package hotwheel

import (
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Rows go out the way the hosted database returns them: prices as numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Hotwheel struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Series    string          `json:"series" db:"series"`
	Color     string          `json:"color" db:"color"`
	Year      int             `json:"year" db:"year"`
	Price     decimal.Decimal `json:"price" db:"price"`
	ImageURL  string          `json:"image_url" db:"image_url"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

const (
	SortName   = "name"
	SortSeries = "series"
	SortPrice  = "price"
	SortYear   = "year"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Query is the filter and ordering a catalog listing is requested with.
type Query struct {
	Search string `json:"search"`
	Sort   string `json:"sort" validate:"oneof=name series price year"`
	Order  string `json:"order" validate:"oneof=asc desc"`
}

func DefaultQuery() Query {
	return Query{Sort: SortName, Order: OrderAsc}
}

// QueryFrom reads search, sort and order from url values, falling back to
// the default ordering for missing parameters.
func QueryFrom(v url.Values) Query {
	q := DefaultQuery()
	q.Search = v.Get("search")
	if s := v.Get("sort"); s != "" {
		q.Sort = s
	}
	if o := v.Get("order"); o != "" {
		q.Order = o
	}
	return q
}

// Values encodes q as url values; an empty search is omitted.
func (q Query) Values() url.Values {
	v := make(url.Values)
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	return v
}

const (
	DBConnected = "Connected successfully"
	DBFailed    = "Connection failed"
)

type Health struct {
	Message  string `json:"message"`
	Database string `json:"database"`
	Count    int    `json:"hotwheelsCount"`
}

func (h Health) Connected() bool {
	return h.Database == DBConnected
}
