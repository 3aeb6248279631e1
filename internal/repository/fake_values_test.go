package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// fakeValues emulates a single sheet whose data starts at row 2.
type fakeValues struct {
	rows    [][]interface{}
	updates map[string]interface{}
	appends int
	err     error
}

func (f *fakeValues) Get(ctx context.Context, rng string) ([][]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeValues) Append(ctx context.Context, rng string, rows [][]interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.appends++
	f.rows = append(f.rows, rows...)
	return nil
}

// Update understands single-cell ranges such as "Pedidos!J3".
func (f *fakeValues) Update(ctx context.Context, rng string, rows [][]interface{}) error {
	if f.err != nil {
		return f.err
	}
	if f.updates == nil {
		f.updates = map[string]interface{}{}
	}
	f.updates[rng] = rows[0][0]

	cell := rng[strings.Index(rng, "!")+1:]
	col := int(cell[0] - 'A')
	rowNum, err := strconv.Atoi(cell[1:])
	if err != nil {
		return errors.New("bad cell " + rng)
	}
	row := f.rows[rowNum-2]
	for len(row) <= col {
		row = append(row, "")
	}
	row[col] = rows[0][0]
	f.rows[rowNum-2] = row
	return nil
}
