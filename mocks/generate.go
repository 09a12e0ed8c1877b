package mocks

//go:generate mockgen -destination=./mock_policy.go -package=mocks github.com/rxtech-lab/candle-bot/internal/strategy Policy
//go:generate mockgen -destination=./mock_journal.go -package=mocks github.com/rxtech-lab/candle-bot/internal/journal Journal
