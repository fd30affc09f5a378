package civicsv

import "time"

// Default export file names inside a data directory
const (
	ResidentsFile  = "residents.csv"
	CategoriesFile = "service_categories.csv"
	ComplaintsFile = "complaints.csv"
	StatusLogsFile = "status_logs.csv"
)

// ResidentRow is one line of residents.csv
type ResidentRow struct {
	ID        int64
	FirstName string
	LastName  string
	Ward      int64
	Email     string
	Phone     string
}

// CategoryRow is one line of service_categories.csv
type CategoryRow struct {
	ID   int64
	Name string
}

// ComplaintRow is one line of complaints.csv
type ComplaintRow struct {
	ID          int64
	ResidentID  int64
	CategoryID  int64
	Title       string
	Description string
	SubmittedAt time.Time
}

// StatusLogRow is one line of status_logs.csv. ID doubles as the
// insertion order tie break for events sharing a date
type StatusLogRow struct {
	ID          int64
	ComplaintID int64
	Status      string
	At          time.Time
}

// OpenResidents streams residents.csv shaped exports
func OpenResidents(path string) (*Reader[ResidentRow], error) {
	want := []string{"resident_id", "first_name", "last_name", "ward", "email", "phone"}
	return open(path, want, func(get func(string) string) (ResidentRow, error) {
		var (
			row ResidentRow
			err error
		)
		if row.ID, err = parseID(get("resident_id"), "resident_id"); err != nil {
			return row, err
		}
		if row.FirstName, err = requireText(get("first_name"), "first_name"); err != nil {
			return row, err
		}
		if row.LastName, err = requireText(get("last_name"), "last_name"); err != nil {
			return row, err
		}
		if row.Ward, err = parseID(get("ward"), "ward"); err != nil {
			return row, err
		}
		row.Email = get("email")
		row.Phone = get("phone")
		return row, nil
	})
}

// OpenCategories streams service_categories.csv shaped exports
func OpenCategories(path string) (*Reader[CategoryRow], error) {
	want := []string{"category_id", "category_name"}
	return open(path, want, func(get func(string) string) (CategoryRow, error) {
		var (
			row CategoryRow
			err error
		)
		if row.ID, err = parseID(get("category_id"), "category_id"); err != nil {
			return row, err
		}
		if row.Name, err = requireText(get("category_name"), "category_name"); err != nil {
			return row, err
		}
		return row, nil
	})
}

// OpenComplaints streams complaints.csv shaped exports
func OpenComplaints(path string) (*Reader[ComplaintRow], error) {
	want := []string{"complaint_id", "resident_id", "category_id", "title", "description", "submission_date"}
	return open(path, want, func(get func(string) string) (ComplaintRow, error) {
		var (
			row ComplaintRow
			err error
		)
		if row.ID, err = parseID(get("complaint_id"), "complaint_id"); err != nil {
			return row, err
		}
		if row.ResidentID, err = parseID(get("resident_id"), "resident_id"); err != nil {
			return row, err
		}
		if row.CategoryID, err = parseID(get("category_id"), "category_id"); err != nil {
			return row, err
		}
		if row.Title, err = requireText(get("title"), "title"); err != nil {
			return row, err
		}
		row.Description = get("description")
		if row.SubmittedAt, err = parseDate(get("submission_date"), "submission_date"); err != nil {
			return row, err
		}
		return row, nil
	})
}

// OpenStatusLogs streams status_logs.csv shaped exports
func OpenStatusLogs(path string) (*Reader[StatusLogRow], error) {
	want := []string{"log_id", "complaint_id", "status", "status_date"}
	return open(path, want, func(get func(string) string) (StatusLogRow, error) {
		var (
			row StatusLogRow
			err error
		)
		if row.ID, err = parseID(get("log_id"), "log_id"); err != nil {
			return row, err
		}
		if row.ComplaintID, err = parseID(get("complaint_id"), "complaint_id"); err != nil {
			return row, err
		}
		if row.Status, err = requireText(get("status"), "status"); err != nil {
			return row, err
		}
		if row.At, err = parseDate(get("status_date"), "status_date"); err != nil {
			return row, err
		}
		return row, nil
	})
}
