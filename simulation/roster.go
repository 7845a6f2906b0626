package simulation

import (
	"strings"

	"github.com/courtlabs/courtroom-sim-api/models"
)

// NewCourtroomParticipants builds the session's participants from a case:
// a judge, the two party lawyers and one participant per case witness.
func NewCourtroomParticipants(c *models.Case) map[string]*Participant {
	participants := map[string]*Participant{}

	judge := NewParticipant("Judge Reynolds", RoleJudge)
	judge.Define("age", "65")
	judge.Define("occupation", "Judge at the District Court")
	judge.Define("personality", "impartial, stern, knowledgeable in law, patient")
	participants[KeyJudge] = judge

	prosecutor := NewParticipant(c.Plaintiff.Lawyer, RoleProsecutor)
	prosecutor.Define("age", "35")
	prosecutor.Define("occupation", "Prosecutor at the District Attorney's Office")
	prosecutor.Define("personality", "ambitious, skilled orator, determined, believes in evidence")
	participants[KeyProsecutor] = prosecutor

	defense := NewParticipant(c.Defendant.Lawyer, RoleDefenseLawyer)
	defense.Define("age", "42")
	defense.Define("occupation", "Defense Lawyer at Faye & Associates")
	defense.Define("personality", "charismatic, persuasive, staunch defender, empathetic")
	participants[KeyDefenseLawyer] = defense

	for i, w := range c.Witnesses {
		witness := NewParticipant(w.Name, RoleWitness)
		witness.Define("occupation", "Witness in the case '"+c.Title+"'")
		if s := strings.TrimSpace(w.TestimonySummary); s != "" {
			witness.Define("knowledge", s)
		}
		participants[WitnessKey(i)] = witness
	}

	return participants
}
