// Package domain defines shared types for the directory reference data surface
package domain

// Resident is a registered resident as stored in the directory
type Resident struct {
	ID        int64  `json:"resident_id" example:"101"`
	FirstName string `json:"first_name"  example:"Thandi"`
	LastName  string `json:"last_name"   example:"Mokoena"`
	Ward      int64  `json:"ward"        example:"3"`
	Email     string `json:"email,omitempty" example:"thandi@example.org"`
	Phone     string `json:"phone,omitempty" example:"021-555-0142"`
}

// Name returns the display name used on complaint listings
func (r Resident) Name() string {
	switch {
	case r.FirstName == "":
		return r.LastName
	case r.LastName == "":
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// Category is a service category complaints are filed under
type Category struct {
	ID   int64  `json:"category_id"   example:"4"`
	Name string `json:"category_name" example:"Water & Sanitation"`
}

// Ward is a municipal ward with its registered resident count
type Ward struct {
	Ward      int64 `json:"ward"      example:"3"`
	Residents int64 `json:"residents" example:"124"`
}
