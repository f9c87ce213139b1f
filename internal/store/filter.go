package store

import "gorm.io/gorm"

// ProjectFilter scopes a query to one project or to all of them. The
// zero value matches nothing; callers must build it through AllProjects
// or ByProject so that "no filter" is always an explicit choice.
type ProjectFilter struct {
	projectID string
	all       bool
}

func AllProjects() ProjectFilter {
	return ProjectFilter{all: true}
}

func ByProject(projectID string) ProjectFilter {
	return ProjectFilter{projectID: projectID}
}

func (f ProjectFilter) apply(db *gorm.DB) *gorm.DB {
	if f.all {
		return db
	}
	return db.Where("project_id = ?", f.projectID)
}
