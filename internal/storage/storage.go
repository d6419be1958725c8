package storage

import "deltascope/internal/model"

// Storage defines a sink for diff reports.
type Storage interface {
	PutReport(report model.DiffReport) error
}
