package specification

import "gorm.io/gorm"

// Specification narrows or shapes a gorm query.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// And applies each specification in order.
type And []Specification

func (a And) Apply(db *gorm.DB) *gorm.DB {
	for _, spec := range a {
		db = spec.Apply(db)
	}
	return db
}
