package models

import "time"

// Project is a catalog entry employees report work against.
type Project struct {
	ID          string     `db:"id" json:"id"`
	ProjectName string     `db:"project_name" json:"projectName"`
	Client      string     `db:"client" json:"client"`
	ProjectLead string     `db:"project_lead" json:"projectLead"`
	Category    string     `db:"category" json:"category"`
	Modules     StringList `db:"modules" json:"modules"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}
