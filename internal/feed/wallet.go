package feed

import (
	"fmt"

	"autistnet/internal/domain"
)

func (TransferCoins) name() string { return "transfer_coins" }

// apply debits the sender and credits the recipient. Both balances and both
// ledger entries change together or not at all.
func (a TransferCoins) apply(s *State, env Env) error {
	sender, err := s.mustAccount(a.Sender)
	if err != nil {
		return err
	}
	if a.Amount <= 0 || a.Amount > sender.Coins {
		return domain.InsufficientFunds(sender.Coins, a.Amount)
	}
	if a.Recipient == a.Sender {
		return domain.Validationf("cannot transfer coins to yourself")
	}
	recipient, err := s.mustAccount(a.Recipient)
	if err != nil {
		return err
	}

	at := env.now()
	sender.Coins -= a.Amount
	recipient.Coins += a.Amount
	s.accounts[sender.ID] = sender
	s.accounts[recipient.ID] = recipient

	s.ledgers[sender.ID] = append(s.ledgers[sender.ID], domain.Transaction{
		ID:           domain.TxID(env.newID("t_")),
		Direction:    domain.Debit,
		Amount:       a.Amount,
		Description:  fmt.Sprintf("Transfer to %s", recipient.Name),
		Counterparty: recipient.ID,
		At:           at,
	})
	s.ledgers[recipient.ID] = append(s.ledgers[recipient.ID], domain.Transaction{
		ID:           domain.TxID(env.newID("t_")),
		Direction:    domain.Credit,
		Amount:       a.Amount,
		Description:  fmt.Sprintf("Transfer from %s", sender.Name),
		Counterparty: sender.ID,
		At:           at,
	})
	return nil
}

func (ClaimReward) name() string { return "claim_reward" }

func (a ClaimReward) apply(s *State, env Env) error {
	var amount int64
	switch a.Reward {
	case RewardVideo:
		amount = env.Policy.VideoReward
	default:
		return domain.Validationf("unknown reward %q", a.Reward)
	}
	acct, err := s.mustAccount(a.Actor)
	if err != nil {
		return err
	}
	acct.Coins += amount
	s.accounts[acct.ID] = acct
	return nil
}

func (SubmitStory) name() string { return "submit_story" }

func (a SubmitStory) apply(s *State, env Env) error {
	if blank(a.Text) {
		return domain.Validationf("story text is required")
	}
	acct, err := s.mustAccount(a.Actor)
	if err != nil {
		return err
	}
	acct.Coins += env.Policy.StoryReward
	s.accounts[acct.ID] = acct
	return nil
}
