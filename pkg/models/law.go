package models

import "time"

// LawProject is a legislative bill.
// Stored in law_project table.
type LawProject struct {
	ID               int64   `json:"id"`
	BulletinNumber   string  `json:"bulletin_number"`
	Name             string  `json:"name"`
	EntryDate        *Date   `json:"entry_date"`
	AdmissionDate    *Date   `json:"admission_date"`
	InitiativeType   *string `json:"initiative_type"`
	OriginChamber    *string `json:"origin_chamber"`
	Admissible       *bool   `json:"admissible"`
	Status           *string `json:"status"`
	LegislativeStage *string `json:"legislative_stage"`
}

// LawProjectFilter narrows GET /laws.
type LawProjectFilter struct {
	Query          string `query:"q" validate:"max=200"` // Case-insensitive match against name or bulletin number
	Status         string `query:"status" validate:"max=50"`
	InitiativeType string `query:"initiative_type" validate:"max=50"`
	OriginChamber  string `query:"origin_chamber" validate:"max=50"`
	Admissible     *bool  `query:"admissible"`
}

// Vote is one roll-call vote on a law project.
// Stored in law_project_vote table.
type Vote struct {
	ID           int64      `json:"id"`
	LawProjectID int64      `json:"law_project_id"`
	VoteDate     *time.Time `json:"vote_date"`
	Description  *string    `json:"description"`
	VotesYes     int        `json:"votes_yes"`
	VotesNo      int        `json:"votes_no"`
	Abstentions  int        `json:"abstentions"`
	Excused      int        `json:"excused"`
	QuorumType   *string    `json:"quorum_type"`
	Result       *string    `json:"result"`
	Stage        *string    `json:"stage"`
	SubStage     *string    `json:"sub_stage"`
}

// VoteDetail is one member's choice in a roll-call vote.
// Stored in law_project_vote_detail table.
type VoteDetail struct {
	ID         int64  `json:"id"`
	VoteID     int64  `json:"vote_id"`
	MemberID   *int64 `json:"parliament_member_id"`
	VoteChoice string `json:"vote_choice"`
}

// VoteDetailView is a vote detail enriched with the voter's name and party.
type VoteDetailView struct {
	VoteDetail
	MemberName string  `json:"member_name"`
	Party      *string `json:"party"` // Abbreviation, else full name; nil without a party
}

// Author is a law project author (a member).
type Author struct {
	ID       int64  `json:"id"` // law_project_author row id
	MemberID int64  `json:"parliament_member_id"`
	Name     string `json:"name"`
}

// Matter is a topic a law project is filed under.
type Matter struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Ministry is a ministry sponsoring or associated with a law project.
type Ministry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MemberVote is one of a member's vote choices with its law project.
type MemberVote struct {
	DetailID       int64      `json:"id"`
	VoteID         int64      `json:"vote_id"`
	LawProjectID   int64      `json:"law_project_id"`
	BulletinNumber string     `json:"bulletin_number"`
	ProjectName    string     `json:"project_name"`
	VoteDate       *time.Time `json:"vote_date"`
	VoteChoice     string     `json:"vote_choice"`
}

// LawProjectWithVotes for GET /laws/{id}.
type LawProjectWithVotes struct {
	Project LawProject `json:"project"`
	Votes   []Vote     `json:"votes"`
}

// LawProjectDetail for GET /laws/{id}/detail.
type LawProjectDetail struct {
	Project     LawProject       `json:"project"`
	LatestVote  *Vote            `json:"latest_vote"`
	VoteDetails []VoteDetailView `json:"vote_details"`
	Votes       []Vote           `json:"votes"`
	Authors     []Author         `json:"authors"`
	Matters     []Matter         `json:"matters"`
	Ministries  []Ministry       `json:"ministries"`
}
