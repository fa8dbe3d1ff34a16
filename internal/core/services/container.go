package services

import (
	portsrepo "github.com/lfmachado/digibank/internal/core/ports/repositories"
	portssvc "github.com/lfmachado/digibank/internal/core/ports/services"
	"github.com/lfmachado/digibank/internal/platform/metrics"
)

// Repositories bundles the repository implementations the services run on.
type Repositories struct {
	User    portsrepo.UserRepository
	Account portsrepo.AccountRepository
	Ledger  portsrepo.LedgerRepository
}

// NewServiceContainer wires the services together. m may be nil.
func NewServiceContainer(repos Repositories, m *metrics.LedgerMetrics) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.Account)
	return &portssvc.ServiceContainer{
		Account: accountSvc,
		User:    NewUserService(repos.User, accountSvc),
		Ledger:  NewLedgerService(repos.Ledger, accountSvc, m),
	}
}
