package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// AddStrategy selects how the schedule absorbs a team joining mid-season.
type AddStrategy string

const (
	AddFillByes      AddStrategy = "fill_byes"       // slot the new team into existing bye weeks
	AddStartFromHere AddStrategy = "start_from_here" // regenerate, new team starts at zero
	AddProRate       AddStrategy = "pro_rate"        // regenerate, standings pro-rated by the caller
	AddCatchUp       AddStrategy = "catch_up"        // regenerate, new team seeded with catch-up points
)

// RemoveStrategy selects how the schedule handles a team leaving mid-season.
type RemoveStrategy string

const (
	RemoveByeOpponents RemoveStrategy = "bye_opponents" // opponents of the removed team get byes
	RemoveRegenerate   RemoveStrategy = "regenerate"    // rebuild remaining weeks for the reduced roster
)

// SchedulePairing is one matchup in a round. A nil TeamBID is a bye.
type SchedulePairing struct {
	TeamAID uuid.UUID  `json:"team_a_id"`
	TeamBID *uuid.UUID `json:"team_b_id"`
}

// ScheduleRound is one week of pairings. Rounds are proposals; persistence and
// completed-week protection belong to the calling layer.
type ScheduleRound struct {
	WeekNumber int               `json:"week_number"`
	Pairings   []SchedulePairing `json:"pairings"`
}

// GenerateSchedule produces weekCount rounds of circle-method pairings for the
// given teams, numbering weeks from startWeek. Odd team counts get one bye per
// week. A single round robin spans len(teams)-1 weeks (even count) or
// len(teams) weeks (odd count); requesting more weeks wraps into further
// cycles, and doubleRoundRobin swaps the pairing sides on every second cycle
// so each pair meets once per side.
func GenerateSchedule(teamIDs []uuid.UUID, weekCount, startWeek int, doubleRoundRobin bool) []ScheduleRound {
	if len(teamIDs) < 2 || weekCount <= 0 {
		return []ScheduleRound{}
	}
	if startWeek < 1 {
		startWeek = 1
	}

	// Pad odd rosters with a phantom team; matches against it become byes.
	circle := make([]uuid.UUID, len(teamIDs))
	copy(circle, teamIDs)
	hasBye := len(circle)%2 != 0
	if hasBye {
		circle = append(circle, uuid.Nil)
	}

	n := len(circle)
	cycleLen := n - 1

	rounds := make([]ScheduleRound, 0, weekCount)
	for week := 0; week < weekCount; week++ {
		// Fix circle[0]; rotate the rest one step per week.
		rotation := week % cycleLen
		cycle := week / cycleLen
		arranged := make([]uuid.UUID, n)
		arranged[0] = circle[0]
		for i := 1; i < n; i++ {
			arranged[i] = circle[1+((i-1+rotation)%(n-1))]
		}

		swapSides := doubleRoundRobin && cycle%2 == 1

		round := ScheduleRound{WeekNumber: startWeek + week}
		for i := 0; i < n/2; i++ {
			a, b := arranged[i], arranged[n-1-i]
			if swapSides {
				a, b = b, a
			}
			switch {
			case a == uuid.Nil && b == uuid.Nil:
				continue
			case b == uuid.Nil:
				round.Pairings = append(round.Pairings, SchedulePairing{TeamAID: a})
			case a == uuid.Nil:
				round.Pairings = append(round.Pairings, SchedulePairing{TeamAID: b})
			default:
				teamB := b
				round.Pairings = append(round.Pairings, SchedulePairing{TeamAID: a, TeamBID: &teamB})
			}
		}
		rounds = append(rounds, round)
	}

	return rounds
}

// SingleRoundRobinWeeks returns the week span of one full round robin.
func SingleRoundRobinWeeks(teamCount int) int {
	if teamCount < 2 {
		return 0
	}
	if teamCount%2 == 0 {
		return teamCount - 1
	}
	return teamCount
}

// FillByes assigns a new team into the bye slots of the given rounds,
// returning rewritten rounds. The strategy is only valid while bye slots
// exist; zero available slots is an error the caller surfaces as a validation
// failure.
func FillByes(rounds []ScheduleRound, newTeamID uuid.UUID) ([]ScheduleRound, error) {
	filled := 0
	out := make([]ScheduleRound, len(rounds))
	for ri, round := range rounds {
		out[ri] = ScheduleRound{WeekNumber: round.WeekNumber, Pairings: make([]SchedulePairing, len(round.Pairings))}
		copy(out[ri].Pairings, round.Pairings)
		for pi, pairing := range out[ri].Pairings {
			if pairing.TeamBID == nil {
				opponent := newTeamID
				out[ri].Pairings[pi].TeamBID = &opponent
				filled++
				break // at most one bye per week to fill
			}
		}
	}
	if filled == 0 {
		return nil, fmt.Errorf("no bye slots available to fill")
	}
	return out, nil
}

// RemoveTeamByes converts a removed team's matches into byes for its would-be
// opponents. Pairings where the removed team already had the bye drop out
// entirely; the caller cancels the corresponding persisted matches.
func RemoveTeamByes(rounds []ScheduleRound, removedTeamID uuid.UUID) []ScheduleRound {
	out := make([]ScheduleRound, 0, len(rounds))
	for _, round := range rounds {
		rewritten := ScheduleRound{WeekNumber: round.WeekNumber}
		for _, pairing := range round.Pairings {
			switch {
			case pairing.TeamAID == removedTeamID && pairing.TeamBID == nil:
				// Removed team's bye: nothing left to play.
				continue
			case pairing.TeamAID == removedTeamID:
				rewritten.Pairings = append(rewritten.Pairings, SchedulePairing{TeamAID: *pairing.TeamBID})
			case pairing.TeamBID != nil && *pairing.TeamBID == removedTeamID:
				rewritten.Pairings = append(rewritten.Pairings, SchedulePairing{TeamAID: pairing.TeamAID})
			default:
				rewritten.Pairings = append(rewritten.Pairings, pairing)
			}
		}
		out = append(out, rewritten)
	}
	return out
}
