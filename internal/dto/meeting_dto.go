package dto

import "github.com/idealmente/idealmente/internal/model"

// MeetingListDTO is the meetings-page projection: upcoming meetings in
// chronological order with the next one singled out, past meetings most
// recent first.
type MeetingListDTO struct {
	Next     *model.Meeting  `json:"next"`
	Upcoming []model.Meeting `json:"upcoming"`
	Past     []model.Meeting `json:"past"`
}

func NewMeetingList(upcoming, past []model.Meeting) MeetingListDTO {
	out := MeetingListDTO{Upcoming: upcoming, Past: past}
	if len(upcoming) > 0 {
		out.Next = &upcoming[0]
	}
	return out
}
