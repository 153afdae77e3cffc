package wizard

import (
	"strings"

	"inscricaoflow/internal/cpf"
	"inscricaoflow/internal/domain"
)

// User-facing messages, kept verbatim from the product (ASCII Portuguese).
const (
	msgInvalidCPF     = "CPF invalido"
	msgDuplicateCPF   = "CPF duplicado entre os participantes"
	msgRegisteredCPF  = "CPF ja possui inscricao confirmada para este evento"
	msgRemoteCheck    = "Nao foi possivel verificar CPF agora. Tente novamente."
	msgSelectDistrict = "Selecione um distrito."
	msgSelectChurch   = "Selecione uma igreja."
	msgAtLeastOne     = "Informe ao menos um participante."
	msgFillRequired   = "Preencha todos os dados obrigatorios dos participantes."
	msgUnderMinAge    = "Um ou mais participantes nao atingem a idade minima do evento."
	msgVerifyFailed   = "Nao foi possivel verificar."
	msgCreateFailed   = "Erro ao criar inscricoes."

	msgDuplicateGlobal  = "Existem CPFs duplicados entre os participantes. Ajuste antes de prosseguir."
	msgRegisteredGlobal = "Um ou mais CPFs ja possuem inscricao confirmada neste evento."
)

// registeredMessage builds the registered-CPF error, annotated with the
// existing registrant's name when the profile carries one.
func registeredMessage(profile *domain.Profile) string {
	if profile != nil && profile.FullName != "" {
		return msgRegisteredCPF + " (" + profile.FullName + ")"
	}
	return msgRegisteredCPF
}

// isRegisteredError matches both the plain and the name-annotated variants.
func isRegisteredError(msg string) bool {
	return strings.HasPrefix(msg, msgRegisteredCPF)
}

// updateDuplicateErrors flags every participant whose normalized CPF appears
// two or more times in the batch and returns the flagged index set. Flags
// clear the instant the digit set becomes unique again; registered and
// remote-failure messages on other indices are left untouched.
func (w *Wizard) updateDuplicateErrors() map[int]bool {
	counts := make(map[string]int)
	for i := range w.people {
		digits := cpf.Normalize(w.people[i].CPF)
		if len(digits) == 11 {
			counts[digits]++
		}
	}
	flagged := make(map[int]bool)
	for i := range w.people {
		digits := cpf.Normalize(w.people[i].CPF)
		if len(digits) == 11 && counts[digits] >= 2 {
			w.cpfErrors[i] = msgDuplicateCPF
			flagged[i] = true
		} else if w.cpfErrors[i] == msgDuplicateCPF {
			w.cpfErrors[i] = ""
		}
	}
	return flagged
}

// updateGlobalError recomputes the participants-step banner. Precedence:
// duplicate > registered > remote failure. The banner only shows on the
// participants step, clears when nothing applies, and never overwrites a
// non-CPF banner message.
func (w *Wizard) updateGlobalError() {
	if w.step != StepParticipants {
		return
	}
	if w.globalError != "" && !w.globalErrorIsCPF {
		return
	}
	var duplicate, registered, remote bool
	for _, msg := range w.cpfErrors {
		switch {
		case msg == msgDuplicateCPF:
			duplicate = true
		case isRegisteredError(msg):
			registered = true
		case msg == msgRemoteCheck:
			remote = true
		}
	}
	switch {
	case duplicate:
		w.setBanner(msgDuplicateGlobal, true)
	case registered:
		w.setBanner(msgRegisteredGlobal, true)
	case remote:
		w.setBanner(msgRemoteCheck, true)
	default:
		w.clearBanner()
	}
}

func (w *Wizard) setBanner(msg string, isCPF bool) {
	w.globalError = msg
	w.globalErrorIsCPF = isCPF
}

func (w *Wizard) clearBanner() {
	w.globalError = ""
	w.globalErrorIsCPF = false
}
