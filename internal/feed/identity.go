package feed

import (
	"strings"

	"autistnet/internal/domain"
)

func (EnterGovernmentMode) name() string { return "enter_government_mode" }

func (a EnterGovernmentMode) apply(s *State, env Env) error {
	if s.suspendedID != "" || s.accounts[s.activeID].Role == domain.RoleGovernment {
		return domain.Validationf("already acting as a government entity")
	}
	if len(strings.TrimSpace(a.RegistrationID)) < env.Policy.MinRegistrationIDLength {
		return domain.Validationf("registration id must have at least %d characters",
			env.Policy.MinRegistrationIDLength)
	}
	if _, ok := s.accounts[s.governmentID]; !ok {
		return domain.NotFound("account", s.governmentID.String())
	}
	s.suspendedID = s.activeID
	s.activeID = s.governmentID
	return nil
}

func (ExitGovernmentMode) name() string { return "exit_government_mode" }

func (ExitGovernmentMode) apply(s *State, _ Env) error {
	if s.suspendedID == "" {
		return nil
	}
	s.activeID = s.suspendedID
	s.suspendedID = ""
	return nil
}

func (RegisterAccount) name() string { return "register_account" }

func (a RegisterAccount) apply(s *State, _ Env) error {
	if blank(a.Account.Name) {
		return domain.Validationf("account name is required")
	}
	return s.addAccount(a.Account)
}

func (UpdateProfile) name() string { return "update_profile" }

func (a UpdateProfile) apply(s *State, _ Env) error {
	acct, err := s.mustAccount(a.Account)
	if err != nil {
		return err
	}
	p := a.Patch
	if p.Name != nil {
		if blank(*p.Name) {
			return domain.Validationf("name cannot be empty")
		}
		acct.Name = strings.TrimSpace(*p.Name)
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&acct.Bio, p.Bio)
	set(&acct.CaregiverName, p.CaregiverName)
	set(&acct.City, p.City)
	set(&acct.State, p.State)
	set(&acct.Country, p.Country)
	s.accounts[acct.ID] = acct
	return nil
}

func (SetAvatar) name() string { return "set_avatar" }

func (a SetAvatar) apply(s *State, _ Env) error {
	if blank(a.ImageRef) {
		return domain.Validationf("avatar image is required")
	}
	acct, err := s.mustAccount(a.Account)
	if err != nil {
		return err
	}
	acct.AvatarRef = a.ImageRef
	s.accounts[acct.ID] = acct
	return nil
}
