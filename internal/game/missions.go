package game

import (
	"slices"
	"strings"

	"github.com/terra-clan/spacegom-engine/internal/calendar"
	"github.com/terra-clan/spacegom-engine/internal/events"
	"github.com/terra-clan/spacegom-engine/internal/gameerr"
	"github.com/terra-clan/spacegom-engine/internal/models"
)

// MissionInput describes a mission to track.
type MissionInput struct {
	Type            string         `json:"mission_type"`
	OriginWorld     string         `json:"origin_world,omitempty"`
	ExecutionPlace  string         `json:"execution_place,omitempty"`
	MaxDate         *calendar.Date `json:"max_date,omitempty"`
	ObjectiveNumber *int           `json:"objective_number,omitempty"`
	MissionCode     string         `json:"mission_code,omitempty"`
	BookPage        *int           `json:"book_page,omitempty"`
	Notes           string         `json:"notes,omitempty"`
}

// MissionUpdate changes the non-nil fields of an active mission.
type MissionUpdate struct {
	OriginWorld    *string        `json:"origin_world,omitempty"`
	ExecutionPlace *string        `json:"execution_place,omitempty"`
	MaxDate        *calendar.Date `json:"max_date,omitempty"`
	ClearMaxDate   bool           `json:"clear_max_date,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
}

// CreateMission records a mission. A campaign mission needs its objective
// number; a special mission needs its code and book page. A max date puts a
// deadline on the clock.
func (e *Engine) CreateMission(g *models.GameState, in MissionInput) (models.Mission, error) {
	m := models.Mission{
		OriginWorld:    strings.TrimSpace(in.OriginWorld),
		ExecutionPlace: strings.TrimSpace(in.ExecutionPlace),
		CreatedDate:    g.Date,
		Notes:          in.Notes,
	}

	switch models.MissionType(strings.ToLower(strings.TrimSpace(in.Type))) {
	case models.MissionCampaign:
		if in.ObjectiveNumber == nil || *in.ObjectiveNumber < 1 {
			return models.Mission{}, gameerr.Validation("campaign missions need a positive objective_number")
		}
		m.Type = models.MissionCampaign
		m.ObjectiveNumber = in.ObjectiveNumber
	case models.MissionSpecial:
		code := strings.TrimSpace(in.MissionCode)
		if code == "" || in.BookPage == nil || *in.BookPage < 1 {
			return models.Mission{}, gameerr.Validation("special missions need a mission_code and a positive book_page")
		}
		m.Type = models.MissionSpecial
		m.MissionCode = code
		m.BookPage = in.BookPage
	default:
		return models.Mission{}, gameerr.Validation("invalid mission type %q", in.Type)
	}

	if in.MaxDate != nil {
		if err := checkDeadline(g, *in.MaxDate); err != nil {
			return models.Mission{}, err
		}
		d := *in.MaxDate
		m.MaxDate = &d
	}

	m.ID = g.NextMissionID()
	g.Missions = append(g.Missions, m)
	if m.MaxDate != nil {
		scheduleDeadline(g, &m)
	}

	e.logf(g, models.LogInfo, "New mission: %s", m.Description())
	return m, nil
}

// ResolveMission closes an active mission. Success raises the reputation by
// one and failure lowers it by one; the deadline leaves the clock.
func (e *Engine) ResolveMission(g *models.GameState, id int, success bool) (models.Mission, error) {
	m, ok := g.Mission(id)
	if !ok {
		return models.Mission{}, gameerr.NotFound("mission %d", id)
	}
	if !m.IsActive() {
		return models.Mission{}, gameerr.Constraint("mission %d is already resolved", id)
	}

	completed := g.Date
	m.CompletedDate = &completed
	if success {
		m.Result = models.MissionSucceeded
		g.SetReputation(g.Reputation + 1)
	} else {
		m.Result = models.MissionFailed
		g.SetReputation(g.Reputation - 1)
	}
	removeDeadlines(g, id)

	if success {
		e.logf(g, models.LogSuccess, "Mission completed: %s. Reputation is now %d", m.Description(), g.Reputation)
	} else {
		e.logf(g, models.LogWarning, "Mission failed: %s. Reputation is now %d", m.Description(), g.Reputation)
	}
	return *m, nil
}

// UpdateMission edits an active mission and reschedules its deadline.
func (e *Engine) UpdateMission(g *models.GameState, id int, u MissionUpdate) (models.Mission, error) {
	m, ok := g.Mission(id)
	if !ok {
		return models.Mission{}, gameerr.NotFound("mission %d", id)
	}
	if !m.IsActive() {
		return models.Mission{}, gameerr.Constraint("mission %d is already resolved", id)
	}
	if u.MaxDate != nil {
		if err := checkDeadline(g, *u.MaxDate); err != nil {
			return models.Mission{}, err
		}
	}

	if u.OriginWorld != nil {
		m.OriginWorld = strings.TrimSpace(*u.OriginWorld)
	}
	if u.ExecutionPlace != nil {
		m.ExecutionPlace = strings.TrimSpace(*u.ExecutionPlace)
	}
	if u.Notes != nil {
		m.Notes = *u.Notes
	}
	switch {
	case u.MaxDate != nil:
		d := *u.MaxDate
		m.MaxDate = &d
		removeDeadlines(g, id)
		scheduleDeadline(g, m)
	case u.ClearMaxDate:
		m.MaxDate = nil
		removeDeadlines(g, id)
	}

	e.logf(g, models.LogInfo, "Mission updated: %s", m.Description())
	return *m, nil
}

// DeleteMission forgets a mission and its deadline.
func (e *Engine) DeleteMission(g *models.GameState, id int) error {
	idx := slices.IndexFunc(g.Missions, func(m models.Mission) bool { return m.ID == id })
	if idx < 0 {
		return gameerr.NotFound("mission %d", id)
	}
	desc := g.Missions[idx].Description()
	g.Missions = slices.Delete(g.Missions, idx, idx+1)
	removeDeadlines(g, id)

	e.logf(g, models.LogInfo, "Mission removed: %s", desc)
	return nil
}

// ActiveMissions returns missions still awaiting a result.
func ActiveMissions(g *models.GameState) []models.Mission {
	var out []models.Mission
	for _, m := range g.Missions {
		if m.IsActive() {
			out = append(out, m)
		}
	}
	return out
}

func checkDeadline(g *models.GameState, d calendar.Date) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if calendar.Before(d, g.Date) {
		return gameerr.Validation("max date %s is before the current date %s", d, g.Date)
	}
	return nil
}

func scheduleDeadline(g *models.GameState, m *models.Mission) {
	g.Events = events.Add(g.Events, g.NewEvent(*m.MaxDate, models.MissionDeadlinePayload{
		MissionID:   m.ID,
		MissionType: m.Type,
		Objective:   m.Description(),
	}))
}

func removeDeadlines(g *models.GameState, missionID int) {
	g.Events = events.RemoveWhere(g.Events, func(ev models.Event) bool {
		p, ok := ev.Payload.(models.MissionDeadlinePayload)
		return ok && p.MissionID == missionID
	})
}
