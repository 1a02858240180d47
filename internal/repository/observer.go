package repository

import (
	"database/sql"
	"time"
)

// QueryObserver receives the duration of every statement a repository runs.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

type observed struct {
	observer QueryObserver
}

func (o observed) observe(label string, start time.Time) {
	if o.observer != nil {
		o.observer.ObserveDBQuery(label, time.Since(start))
	}
}

func rowsAffected(res sql.Result) (int64, error) {
	if res == nil {
		return 0, nil
	}
	return res.RowsAffected()
}
