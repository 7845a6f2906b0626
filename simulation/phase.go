package simulation

import (
	"fmt"

	"github.com/courtlabs/courtroom-sim-api/models"
)

// TrialPhase is one stage of the trial. Phases run strictly in declaration
// order, each exactly once; there is no conditional branching between them.
type TrialPhase int

// The closed, ordered phase enumeration
const (
	PhasePreTrial TrialPhase = iota
	PhaseOpeningStatements
	PhaseWitnessExamination
	PhaseClosingStatements
	PhaseDeliberation
	PhaseVerdict
)

// Phases returns the enumeration in execution order
func Phases() []TrialPhase {
	return []TrialPhase{
		PhasePreTrial,
		PhaseOpeningStatements,
		PhaseWitnessExamination,
		PhaseClosingStatements,
		PhaseDeliberation,
		PhaseVerdict,
	}
}

func (p TrialPhase) String() string {
	switch p {
	case PhasePreTrial:
		return "Pre-Trial"
	case PhaseOpeningStatements:
		return "Opening Statements"
	case PhaseWitnessExamination:
		return "Witness Examination"
	case PhaseClosingStatements:
		return "Closing Statements"
	case PhaseDeliberation:
		return "Deliberation"
	case PhaseVerdict:
		return "Verdict"
	}
	return "Unknown"
}

// Step schedules one turn: the participant key that speaks and the contextual
// prompt it hears first. Prompts are rendered once at script build time.
type Step struct {
	Key    string
	Prompt string
}

// Script is the per-phase ordered step list for one session
type Script map[TrialPhase][]Step

// Participant keys used by the default script
const (
	KeyJudge         = "judge"
	KeyProsecutor    = "prosecutor"
	KeyDefenseLawyer = "defense_lawyer"
)

// WitnessKey returns the participant key for the i-th case witness
func WitnessKey(i int) string {
	return fmt.Sprintf("witness_%d", i+1)
}

// BuildScript renders the full trial script for a case. Pre-trial and
// deliberation carry no speaking steps; they still announce their phase.
func BuildScript(c *models.Case) Script {
	prosecutor := c.Plaintiff.Lawyer
	defense := c.Defendant.Lawyer

	script := Script{
		PhasePreTrial: nil,
		PhaseOpeningStatements: {
			{
				Key: KeyProsecutor,
				Prompt: fmt.Sprintf("The trial for '%s' has begun. As the prosecutor, present your opening statement. Summarize the case: %s.",
					c.Title, c.Summary),
			},
			{
				Key: KeyDefenseLawyer,
				Prompt: fmt.Sprintf("Thank you, %s. Now, %s, you may present your opening statement.",
					prosecutor, defense),
			},
		},
		PhaseClosingStatements: {
			{
				Key: KeyProsecutor,
				Prompt: fmt.Sprintf("The evidence has been presented. %s, deliver your closing statement for the prosecution.",
					prosecutor),
			},
			{
				Key: KeyDefenseLawyer,
				Prompt: fmt.Sprintf("%s, deliver your closing statement for the defense.",
					defense),
			},
		},
		PhaseDeliberation: nil,
		PhaseVerdict: {
			{
				Key: KeyJudge,
				Prompt: fmt.Sprintf("Having heard all statements and testimony in '%s', deliver your verdict and briefly explain your reasoning.",
					c.Title),
			},
		},
	}

	script[PhaseWitnessExamination] = nil
	if len(c.Witnesses) > 0 {
		steps := []Step{
			{
				Key:    KeyJudge,
				Prompt: "The court now moves to witness examination. Call the witnesses to the stand.",
			},
		}
		for i, w := range c.Witnesses {
			steps = append(steps,
				Step{
					Key: KeyProsecutor,
					Prompt: fmt.Sprintf("%s has taken the stand. As the prosecutor, examine the witness about the case.",
						w.Name),
				},
				Step{
					Key:    WitnessKey(i),
					Prompt: "Answer the prosecutor's questions truthfully, based on what you saw.",
				},
				Step{
					Key: KeyDefenseLawyer,
					Prompt: fmt.Sprintf("%s, you may cross-examine %s.", defense, w.Name),
				},
			)
		}
		script[PhaseWitnessExamination] = steps
	}

	return script
}
