package postgres

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"club-finance-backend/internal/repository"
)

// rowReader reads typed values from one result row by column name. The
// first conversion failure is kept and later reads return zero values.
type rowReader struct {
	result *repository.Result
	values []any
	err    error
}

func readers(res *repository.Result) []*rowReader {
	out := make([]*rowReader, 0, len(res.Rows))
	for _, v := range res.Rows {
		out = append(out, &rowReader{result: res, values: v})
	}
	return out
}

func (r *rowReader) value(column string) any {
	if r.err != nil {
		return nil
	}
	i := r.result.Index(column)
	if i < 0 || i >= len(r.values) {
		r.err = fmt.Errorf("column %q not in result", column)
		return nil
	}
	return r.values[i]
}

func (r *rowReader) fail(column string, err error) {
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("column %q: %w", column, err)
	}
}

func (r *rowReader) Int64(column string) int64 {
	n, err := asInt64(r.value(column))
	r.fail(column, err)
	return n
}

func (r *rowReader) Int32(column string) int32 {
	n := r.Int64(column)
	if n < math.MinInt32 || n > math.MaxInt32 {
		r.fail(column, fmt.Errorf("value %d out of int32 range", n))
		return 0
	}
	return int32(n)
}

func (r *rowReader) String(column string) string {
	switch t := r.value(column).(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func (r *rowReader) Decimal(column string) decimal.Decimal {
	d, err := asDecimal(r.value(column))
	r.fail(column, err)
	return d
}

// Time returns the zero time for NULL.
func (r *rowReader) Time(column string) time.Time {
	switch t := r.value(column).(type) {
	case time.Time:
		return t
	case nil:
		return time.Time{}
	default:
		r.fail(column, fmt.Errorf("unexpected %T for time", t))
		return time.Time{}
	}
}

func (r *rowReader) Err() error {
	return r.err
}

func asInt64(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int32:
		return int64(t), nil
	case int:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case []byte:
		return strconv.ParseInt(string(t), 10, 64)
	case string:
		return strconv.ParseInt(t, 10, 64)
	case nil:
		return 0, nil
	}
	return 0, fmt.Errorf("unexpected %T for integer", v)
}

// asDecimal handles NUMERIC columns, which lib/pq returns as text.
func asDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case []byte:
		return decimal.NewFromString(string(t))
	case string:
		return decimal.NewFromString(t)
	case float64:
		return decimal.NewFromFloat(t), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case nil:
		return decimal.Zero, nil
	}
	return decimal.Zero, fmt.Errorf("unexpected %T for decimal", v)
}

// scalar returns the first column of the single returned row.
func scalar(res *repository.Result) (any, error) {
	if len(res.Rows) == 0 || len(res.Rows[0]) == 0 {
		return nil, fmt.Errorf("statement returned no rows")
	}
	return res.Rows[0][0], nil
}

func scalarInt64(res *repository.Result) (int64, error) {
	v, err := scalar(res)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}
