package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/votabien/votabien-engine/pkg/models"
)

// LawRepository provides data access for law projects and everything hanging
// off them: roll-call votes, per-member vote details, authors, matters and
// ministries.
type LawRepository interface {
	List(ctx context.Context, filter models.LawProjectFilter, limit, offset int) ([]models.LawProject, error)
	Count(ctx context.Context, filter models.LawProjectFilter) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.LawProject, error)

	// ListVotes returns a project's votes, oldest first.
	ListVotes(ctx context.Context, projectID int64) ([]models.Vote, error)
	// ListVoteDetails returns the per-member details of the given votes by detail id.
	ListVoteDetails(ctx context.Context, voteIDs []int64) ([]models.VoteDetail, error)

	// ListAuthors returns a project's authors by author row id.
	ListAuthors(ctx context.Context, projectID int64) ([]models.Author, error)
	// ListMatters returns a project's matters by name.
	ListMatters(ctx context.Context, projectID int64) ([]models.Matter, error)
	// ListMinistries returns a project's ministries by name.
	ListMinistries(ctx context.Context, projectID int64) ([]models.Ministry, error)

	// ListMemberVotes returns one member's vote choices, newest first.
	ListMemberVotes(ctx context.Context, memberID int64, limit, offset int) ([]models.MemberVote, error)
	CountMemberVotes(ctx context.Context, memberID int64) (int64, error)
}

type lawRepository struct{}

// NewLawRepository creates a new LawRepository.
func NewLawRepository() LawRepository {
	return &lawRepository{}
}

var _ LawRepository = (*lawRepository)(nil)

const lawProjectColumns = `
	lp.id, lp.bulletin_number, lp.name, lp.entry_date, lp.admission_date,
	lp.initiative_type, lp.origin_chamber, lp.admissible, lp.status,
	lp.legislative_stage`

const voteColumns = `
	v.id, v.law_project_id, v.vote_date, v.description, v.votes_yes,
	v.votes_no, v.abstentions, v.excused, v.quorum_type, v.result, v.stage,
	v.sub_stage`

func lawFilterWhere(filter models.LawProjectFilter) *whereClause {
	w := &whereClause{}
	if filter.Query != "" {
		pattern := containsPattern(filter.Query)
		w.add(`(lp.name ILIKE ? OR lp.bulletin_number ILIKE ?)`, pattern, pattern)
	}
	if filter.Status != "" {
		w.add(`lp.status = ?`, filter.Status)
	}
	if filter.InitiativeType != "" {
		w.add(`lp.initiative_type = ?`, filter.InitiativeType)
	}
	if filter.OriginChamber != "" {
		w.add(`lp.origin_chamber = ?`, filter.OriginChamber)
	}
	if filter.Admissible != nil {
		w.add(`lp.admissible = ?`, *filter.Admissible)
	}
	return w
}

func (r *lawRepository) List(ctx context.Context, filter models.LawProjectFilter, limit, offset int) ([]models.LawProject, error) {
	w := lawFilterWhere(filter)
	limitArg := w.next(limit)
	offsetArg := w.next(offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM law_project lp
		%s
		ORDER BY lp.entry_date DESC NULLS LAST, lp.id DESC
		LIMIT %s OFFSET %s`, lawProjectColumns, w.String(), limitArg, offsetArg)
	return collect(ctx, "list law projects", query, scanLawProject, w.args...)
}

func (r *lawRepository) Count(ctx context.Context, filter models.LawProjectFilter) (int64, error) {
	w := lawFilterWhere(filter)
	return count(ctx, "count law projects", `SELECT count(*) FROM law_project lp `+w.String(), w.args...)
}

func (r *lawRepository) GetByID(ctx context.Context, id int64) (*models.LawProject, error) {
	q, err := querier(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + lawProjectColumns + ` FROM law_project lp WHERE lp.id = $1`
	project, err := scanLawProject(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr("get law project", err)
	}
	return &project, nil
}

func (r *lawRepository) ListVotes(ctx context.Context, projectID int64) ([]models.Vote, error) {
	query := `SELECT ` + voteColumns + `
		FROM law_project_vote v
		WHERE v.law_project_id = $1
		ORDER BY v.vote_date ASC NULLS FIRST, v.id ASC`
	return collect(ctx, "list votes", query, scanVote, projectID)
}

func (r *lawRepository) ListVoteDetails(ctx context.Context, voteIDs []int64) ([]models.VoteDetail, error) {
	if len(voteIDs) == 0 {
		return []models.VoteDetail{}, nil
	}
	query := `
		SELECT vd.id, vd.vote_id, vd.parliament_member_id, vd.vote_choice
		FROM law_project_vote_detail vd
		WHERE vd.vote_id = ANY($1)
		ORDER BY vd.id ASC`
	return collect(ctx, "list vote details", query, scanVoteDetail, voteIDs)
}

func (r *lawRepository) ListAuthors(ctx context.Context, projectID int64) ([]models.Author, error) {
	query := `
		SELECT a.id, a.parliament_member_id,
		       m.first_name, m.middle_name, m.last_name, m.second_last_name
		FROM law_project_author a
		JOIN parliament_member m ON m.id = a.parliament_member_id
		WHERE a.law_project_id = $1
		ORDER BY a.id ASC`
	return collect(ctx, "list authors", query, scanAuthor, projectID)
}

func (r *lawRepository) ListMatters(ctx context.Context, projectID int64) ([]models.Matter, error) {
	query := `
		SELECT mt.id, mt.name
		FROM law_project_matter lpm
		JOIN matter mt ON mt.id = lpm.matter_id
		WHERE lpm.law_project_id = $1
		ORDER BY mt.name ASC, mt.id ASC`
	return collect(ctx, "list matters", query, func(row rowScanner) (models.Matter, error) {
		var m models.Matter
		err := row.Scan(&m.ID, &m.Name)
		return m, err
	}, projectID)
}

func (r *lawRepository) ListMinistries(ctx context.Context, projectID int64) ([]models.Ministry, error) {
	query := `
		SELECT mn.id, mn.name
		FROM law_project_ministry lpm
		JOIN ministry mn ON mn.id = lpm.ministry_id
		WHERE lpm.law_project_id = $1
		ORDER BY mn.name ASC, mn.id ASC`
	return collect(ctx, "list ministries", query, func(row rowScanner) (models.Ministry, error) {
		var m models.Ministry
		err := row.Scan(&m.ID, &m.Name)
		return m, err
	}, projectID)
}

func (r *lawRepository) ListMemberVotes(ctx context.Context, memberID int64, limit, offset int) ([]models.MemberVote, error) {
	query := `
		SELECT vd.id, v.id, lp.id, lp.bulletin_number, lp.name, v.vote_date, vd.vote_choice
		FROM law_project_vote_detail vd
		JOIN law_project_vote v ON v.id = vd.vote_id
		JOIN law_project lp ON lp.id = v.law_project_id
		WHERE vd.parliament_member_id = $1
		ORDER BY v.vote_date DESC NULLS LAST, vd.id DESC
		LIMIT $2 OFFSET $3`
	return collect(ctx, "list member votes", query, func(row rowScanner) (models.MemberVote, error) {
		var mv models.MemberVote
		err := row.Scan(&mv.DetailID, &mv.VoteID, &mv.LawProjectID, &mv.BulletinNumber,
			&mv.ProjectName, &mv.VoteDate, &mv.VoteChoice)
		return mv, err
	}, memberID, limit, offset)
}

func (r *lawRepository) CountMemberVotes(ctx context.Context, memberID int64) (int64, error) {
	return count(ctx, "count member votes",
		`SELECT count(*) FROM law_project_vote_detail WHERE parliament_member_id = $1`, memberID)
}

func scanLawProject(row rowScanner) (models.LawProject, error) {
	var lp models.LawProject
	var entryDate, admissionDate *time.Time
	err := row.Scan(
		&lp.ID, &lp.BulletinNumber, &lp.Name, &entryDate, &admissionDate,
		&lp.InitiativeType, &lp.OriginChamber, &lp.Admissible, &lp.Status,
		&lp.LegislativeStage,
	)
	if err != nil {
		return models.LawProject{}, err
	}
	lp.EntryDate = models.NewDate(entryDate)
	lp.AdmissionDate = models.NewDate(admissionDate)
	return lp, nil
}

func scanVote(row rowScanner) (models.Vote, error) {
	var v models.Vote
	err := row.Scan(
		&v.ID, &v.LawProjectID, &v.VoteDate, &v.Description, &v.VotesYes,
		&v.VotesNo, &v.Abstentions, &v.Excused, &v.QuorumType, &v.Result,
		&v.Stage, &v.SubStage,
	)
	return v, err
}

func scanVoteDetail(row rowScanner) (models.VoteDetail, error) {
	var vd models.VoteDetail
	err := row.Scan(&vd.ID, &vd.VoteID, &vd.MemberID, &vd.VoteChoice)
	return vd, err
}

func scanAuthor(row rowScanner) (models.Author, error) {
	var a models.Author
	var first, last string
	var middle, secondLast *string
	if err := row.Scan(&a.ID, &a.MemberID, &first, &middle, &last, &secondLast); err != nil {
		return models.Author{}, err
	}
	m := models.Member{FirstName: first, MiddleName: middle, LastName: last, SecondLastName: secondLast}
	a.Name = m.DisplayName()
	return a, nil
}
