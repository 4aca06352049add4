package enhance

import (
	"fmt"

	"autistnet/internal/domain"
)

const (
	postPrompt = `Reescreva o seguinte texto para que fique mais claro, empático e amigável para uma rede social ` +
		`focada em autismo. Mantenha o sentido original, apenas melhore a comunicação: "%s"`

	complaintPrompt = `Reescreva o seguinte relato de denúncia para que seja formal, respeitoso, objetivo e ` +
		`transmita a gravidade da situação de mau atendimento a uma pessoa autista. Evite xingamentos, ` +
		`foque nos fatos: "%s"`
)

// Prompt builds the instruction sent for variant.
func Prompt(variant domain.EnhanceVariant, raw string) (string, error) {
	switch variant {
	case domain.EnhancePost:
		return fmt.Sprintf(postPrompt, raw), nil
	case domain.EnhanceComplaint:
		return fmt.Sprintf(complaintPrompt, raw), nil
	}
	return "", domain.Validationf("unknown enhancement variant %q", variant)
}
