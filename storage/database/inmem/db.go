// Package inmemdb provides map-backed repositories for tests and debug runs.
package inmemdb

import (
	"sync"

	"github.com/Fukuzeya/zim-student-companion-sub000/core/chart"
	"github.com/Fukuzeya/zim-student-companion-sub000/core/subject"
	"github.com/Fukuzeya/zim-student-companion-sub000/core/user"
)

type (
	DB struct {
		user     *userTable
		subject  *subjectTable
		document *documentTable
		stats    *statsTable
	}

	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}

	subjectTable struct {
		mutex sync.RWMutex
		table map[string]*subject.Subject
	}

	documentTable struct {
		mutex sync.RWMutex
		table map[string]*subject.Document
	}

	statsTable struct {
		mutex      sync.RWMutex
		enrollment []chart.Point
		activity   map[string][]int
		views      map[string]float64 // subject ID -> view count
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		subject:  &subjectTable{table: make(map[string]*subject.Subject)},
		document: &documentTable{table: make(map[string]*subject.Document)},
		stats: &statsTable{
			activity: make(map[string][]int),
			views:    make(map[string]float64),
		},
	}
	return db, nil
}
