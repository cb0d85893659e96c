// Package api defines the Hourbook RPC surface: request and response
// messages, procedure names, handler constructors and clients.
//
// Messages are plain structs carried as JSON over the Connect protocol.
package api

// Entry is one row of the volunteer table.
type Entry struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Event     string `json:"event"`
	Hours     string `json:"hours"`
	Timestamp string `json:"timestamp"`
}

// PersonTotal is the aggregated hours for one person.
type PersonTotal struct {
	Name      string  `json:"name"`
	Hours     float64 `json:"hours"`
	Entries   int     `json:"entries"`
	Unparsed  int     `json:"unparsed,omitempty"`
	FirstDate string  `json:"firstDate,omitempty"`
	LastDate  string  `json:"lastDate,omitempty"`
}

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []string `json:"people"`
}

type AddPersonRequest struct {
	Name string `json:"name"`
}

type AddPersonResponse struct {
	Message string `json:"message"`
}

type AddInformationRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Event    string `json:"event"`
	Hours    string `json:"hours"`
	// Date is YYYY-MM-DD; empty or invalid means today.
	Date string `json:"date,omitempty"`
}

type AddInformationResponse struct {
	Message string `json:"message"`
}

type GetPersonInfoRequest struct {
	Name string `json:"name"`
}

type GetPersonInfoResponse struct {
	Entries []Entry `json:"entries"`
}

type GetSummaryRequest struct{}

type GetSummaryResponse struct {
	People     []PersonTotal `json:"people"`
	TotalHours float64       `json:"totalHours"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	// ExpiresAt is a Unix timestamp.
	ExpiresAt int64 `json:"expiresAt"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type ChangePasswordResponse struct {
	Message string `json:"message"`
}

type ListEntriesRequest struct{}

type ListEntriesResponse struct {
	Entries []Entry `json:"entries"`
}

type DeleteEntryRequest struct {
	Entry Entry `json:"entry"`
}

type DeleteEntryResponse struct {
	Removed int `json:"removed"`
}

type AddEntryRequest struct {
	Entry Entry `json:"entry"`
}

type AddEntryResponse struct{}

type CleanEmptyEntriesRequest struct{}

type CleanEmptyEntriesResponse struct {
	Removed int    `json:"removed"`
	Message string `json:"message"`
}

type ImportEntriesRequest struct {
	// Path is a CSV, XLSX or XLS file readable by the server.
	Path string `json:"path"`
}

type ImportEntriesResponse struct {
	Imported int    `json:"imported"`
	Total    int    `json:"total"`
	Message  string `json:"message"`
}

// Export formats.
const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
)

type ExportEntriesRequest struct {
	Path string `json:"path"`
	// Format is FormatCSV or FormatExcel; empty picks from the path extension.
	Format string `json:"format,omitempty"`
}

type ExportEntriesResponse struct {
	Message string `json:"message"`
}

type ConfigureMirrorRequest struct {
	Path string `json:"path"`
}

type ConfigureMirrorResponse struct {
	Message string `json:"message"`
}
