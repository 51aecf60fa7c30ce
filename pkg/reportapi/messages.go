// Package reportapi defines the ReportService wire contract.
//
// Messages travel as JSON over Connect. Amounts are decimal strings with up
// to four fractional digits so no client has to trust a float; dates are
// YYYY-MM-DD.
package reportapi

// GetReportRequest selects a room and an optional inclusive date range.
type GetReportRequest struct {
	RoomID string `json:"room_id"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

type GetReportResponse struct {
	RoomID           string                `json:"room_id"`
	RoomName         string                `json:"room_name"`
	Currency         Currency              `json:"currency"`
	From             string                `json:"from,omitempty"`
	To               string                `json:"to,omitempty"`
	GrandTotal       string                `json:"grand_total"`
	RecordCount      int                   `json:"record_count"`
	Balances         []Balance             `json:"balances"`
	Settlements      []Settlement          `json:"settlements"`
	Categories       []CategorySummary     `json:"categories"`
	Daily            []TimeBucket          `json:"daily"`
	Spending         []ParticipantSpending `json:"spending"`
	PrecisionWarning *PrecisionWarning     `json:"precision_warning,omitempty"`
	GeneratedAt      int64                 `json:"generated_at"`
}

// Currency tells clients how to round and label amounts.
type Currency struct {
	Code     string `json:"code"`
	Decimals int    `json:"decimals"`
	Symbol   string `json:"symbol"`
}

type Balance struct {
	ParticipantID string `json:"participant_id"`
	DisplayName   string `json:"display_name"`
	Paid          string `json:"paid"`
	Owed          string `json:"owed"`
	Net           string `json:"net"`
	// NetDisplay is Net rounded and formatted in the room currency.
	NetDisplay string `json:"net_display"`
}

type Settlement struct {
	From     string `json:"from"`
	FromName string `json:"from_name"`
	To       string `json:"to"`
	ToName   string `json:"to_name"`
	Amount   string `json:"amount"`
}

type CategorySummary struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon,omitempty"`
	Color      string  `json:"color,omitempty"`
	Total      string  `json:"total"`
	Count      int     `json:"count"`
	Share      float64 `json:"share"`
}

// TimeBucket is a month ("2024-03") or a day ("2024-03-15") aggregate.
type TimeBucket struct {
	Key           string            `json:"key"`
	Total         string            `json:"total"`
	Count         int               `json:"count"`
	ByParticipant map[string]string `json:"by_participant,omitempty"`
}

type ParticipantSpending struct {
	ParticipantID string  `json:"participant_id"`
	DisplayName   string  `json:"display_name"`
	Total         string  `json:"total"`
	Count         int     `json:"count"`
	Share         float64 `json:"share"`
}

type PrecisionWarning struct {
	Drift     string `json:"drift"`
	Tolerance string `json:"tolerance"`
	Message   string `json:"message"`
}

type ListMonthsRequest struct {
	RoomID string `json:"room_id"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

type ListMonthsResponse struct {
	Currency Currency     `json:"currency"`
	Months   []TimeBucket `json:"months"`
}

type GetDayBreakdownRequest struct {
	RoomID string `json:"room_id"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
}

type Participant struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Kind        string `json:"kind"`
	MemberCount int    `json:"member_count"`
}

type GetDayBreakdownResponse struct {
	Currency     Currency      `json:"currency"`
	Participants []Participant `json:"participants"`
	Days         []TimeBucket  `json:"days"`
}
