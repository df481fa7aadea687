package quickpay

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Step is a wizard state.
type Step string

const (
	StepSearch       Step = "search"
	StepPayment      Step = "payment"
	StepChooseMethod Step = "choose_method"
	StepOTP          Step = "otp"
	StepReceipt      Step = "receipt"
)

var (
	// ErrInvalidStep signals an operation called outside its step.
	ErrInvalidStep = errors.New("quickpay: operation not valid in current step")
	// ErrInvalidOTP signals a wrong verification code. Recoverable: the
	// wizard stays on the otp step with its context unchanged.
	ErrInvalidOTP = errors.New("quickpay: incorrect verification code")
	// ErrMethodNotFound signals selecting a payment method that is not in
	// the available set.
	ErrMethodNotFound = errors.New("quickpay: payment method not found")
	// ErrConfirmInFlight signals a confirm while one is already pending.
	ErrConfirmInFlight = errors.New("quickpay: confirmation already in progress")
	// ErrWizardDone signals use of a wizard that has been exited.
	ErrWizardDone = errors.New("quickpay: wizard has ended")
)

// Repository is the data access the wizard needs. *SQLRepository satisfies
// it; tests use a fake.
type Repository interface {
	FindAccount(accountNumber, lastName string) (*Account, error)
	AccountForUser(userID string) (*Account, error)
	MethodsForAccount(accountNumber string) ([]Method, error)
	InsertMethod(m Method) error
	InsertTransaction(tx Transaction) error
}

// Context is a snapshot of the wizard's journey state, discarded when the
// wizard exits or completes.
type Context struct {
	Step           Step
	AccountNumber  string
	LastName       string
	ChosenMethodID string
	TransactionID  string
}

// Options configure a wizard run.
type Options struct {
	// Homeowner skips the account lookup: the wizard starts at the
	// choose-method step against the caller's own account.
	Homeowner bool
	// UserID identifies the homeowner's account. Required when Homeowner.
	UserID string
	// ConfirmDelay is the artificial latency of the payment confirmation.
	ConfirmDelay time.Duration
}

// Wizard is one run of the Quick Pay journey. All operations are
// synchronous except ConfirmPayment's fixed delay, which is never
// re-entrant.
type Wizard struct {
	repo  Repository
	delay time.Duration

	mu          sync.Mutex
	step        Step
	done        bool
	confirming  bool
	isHomeowner bool

	account        *Account
	methods        []Method
	accountNumber  string
	lastName       string
	chosenMethodID string
	issuedOTP      string
	transactionID  string
}

// New starts a wizard. Homeowners enter directly at choose-method with
// their own account and stored methods; everyone else starts at search.
func New(repo Repository, opts Options) (*Wizard, error) {
	w := &Wizard{
		repo:        repo,
		delay:       opts.ConfirmDelay,
		step:        StepSearch,
		isHomeowner: opts.Homeowner,
	}

	if opts.Homeowner {
		account, err := repo.AccountForUser(opts.UserID)
		if err != nil {
			return nil, err
		}
		methods, err := repo.MethodsForAccount(account.AccountNumber)
		if err != nil {
			return nil, err
		}
		w.account = account
		w.methods = methods
		w.accountNumber = account.AccountNumber
		w.step = StepChooseMethod
	}

	return w, nil
}

// Step returns the current wizard state.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Done reports whether the wizard has been exited.
func (w *Wizard) Done() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

// Snapshot returns the journey context.
func (w *Wizard) Snapshot() Context {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Context{
		Step:           w.step,
		AccountNumber:  w.accountNumber,
		LastName:       w.lastName,
		ChosenMethodID: w.chosenMethodID,
		TransactionID:  w.transactionID,
	}
}

// Account returns the matched account, if any.
func (w *Wizard) Account() *Account {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.account == nil {
		return nil
	}
	a := *w.account
	return &a
}

// Methods returns the available payment methods.
func (w *Wizard) Methods() []Method {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Method(nil), w.methods...)
}

// IssuedOTP returns the pending verification code. The real app delivers
// it by SMS; here the shell prints it.
func (w *Wizard) IssuedOTP() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.issuedOTP
}

// Search matches the lookup credentials against payable accounts. On a
// match the wizard advances to payment; otherwise it stays on search and
// returns ErrAccountNotFound.
func (w *Wizard) Search(accountNumber, lastName string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.done {
		return ErrWizardDone
	}
	if w.step != StepSearch {
		return ErrInvalidStep
	}

	account, err := w.repo.FindAccount(accountNumber, lastName)
	if err != nil {
		return err
	}
	methods, err := w.repo.MethodsForAccount(account.AccountNumber)
	if err != nil {
		return err
	}

	w.account = account
	w.methods = methods
	w.accountNumber = account.AccountNumber
	w.lastName = lastName
	w.step = StepPayment
	return nil
}

// ConfirmPayment reviews the amount due and advances to choose-method
// after the fixed delay. A second call while one is pending returns
// ErrConfirmInFlight rather than interleaving.
func (w *Wizard) ConfirmPayment(ctx context.Context) error {
	w.mu.Lock()
	if w.done {
		w.mu.Unlock()
		return ErrWizardDone
	}
	if w.step != StepPayment {
		w.mu.Unlock()
		return ErrInvalidStep
	}
	if w.confirming {
		w.mu.Unlock()
		return ErrConfirmInFlight
	}
	w.confirming = true
	w.mu.Unlock()

	select {
	case <-time.After(w.delay):
	case <-ctx.Done():
		w.mu.Lock()
		w.confirming = false
		w.mu.Unlock()
		return ctx.Err()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.confirming = false
	if w.done {
		return ErrWizardDone
	}
	w.step = StepChooseMethod
	return nil
}

// SelectMethod records the chosen payment method and issues the
// verification code.
func (w *Wizard) SelectMethod(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.done {
		return ErrWizardDone
	}
	if w.step != StepChooseMethod {
		return ErrInvalidStep
	}

	found := false
	for _, m := range w.methods {
		if m.ID == id {
			found = true
			break
		}
	}
	if !found {
		return ErrMethodNotFound
	}

	otp, err := issueOTP()
	if err != nil {
		return err
	}

	w.chosenMethodID = id
	w.issuedOTP = otp
	w.step = StepOTP
	slog.Debug("quickpay: otp issued (mock sms)", "account", w.accountNumber, "code", otp)
	return nil
}

// AddCard validates the card form and appends a new method to the
// available set, staying on choose-method. Invalid input changes nothing.
func (w *Wizard) AddCard(in CardInput) (Method, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.done {
		return Method{}, ErrWizardDone
	}
	if w.step != StepChooseMethod {
		return Method{}, ErrInvalidStep
	}
	if err := validateCard(in); err != nil {
		return Method{}, err
	}

	cleaned := cleanCardNumber(in.Number)
	m := Method{
		ID:            uuid.NewString(),
		AccountNumber: w.accountNumber,
		Brand:         DetectBrand(cleaned),
		Last4:         last4(cleaned),
		Holder:        in.Holder,
		Expiry:        in.Expiry,
	}
	if err := w.repo.InsertMethod(m); err != nil {
		return Method{}, err
	}

	w.methods = append(w.methods, m)
	return m, nil
}

// VerifyOTP completes the payment when the code matches: the transaction
// is recorded and the wizard reaches the receipt. A wrong code leaves the
// wizard on the otp step with its context untouched.
func (w *Wizard) VerifyOTP(code string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.done {
		return ErrWizardDone
	}
	if w.step != StepOTP {
		return ErrInvalidStep
	}
	if code != w.issuedOTP {
		return ErrInvalidOTP
	}

	tx := Transaction{
		ID:            uuid.NewString(),
		AccountNumber: w.accountNumber,
		MethodID:      w.chosenMethodID,
		Amount:        w.account.Balance,
		CreatedAt:     time.Now().UTC(),
	}
	if err := w.repo.InsertTransaction(tx); err != nil {
		return err
	}

	w.transactionID = tx.ID
	w.step = StepReceipt
	slog.Info("quickpay: payment completed",
		"account", w.accountNumber, "amount", tx.Amount.String(), "transaction", tx.ID)
	return nil
}

// Back navigates to the previous step. It reports whether the wizard
// exited instead: homeowners leave from choose-method (search and payment
// were never entered), guests leave from search, and the receipt is
// terminal.
func (w *Wizard) Back() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.done {
		return true
	}

	switch w.step {
	case StepSearch:
		w.done = true
		return true
	case StepPayment:
		w.step = StepSearch
		w.account = nil
		w.methods = nil
		w.accountNumber = ""
		w.lastName = ""
		return false
	case StepChooseMethod:
		if w.isHomeowner {
			w.done = true
			return true
		}
		w.step = StepPayment
		return false
	case StepOTP:
		w.step = StepChooseMethod
		w.chosenMethodID = ""
		w.issuedOTP = ""
		return false
	case StepReceipt:
		w.done = true
		return true
	}
	return false
}

// Exit discards the wizard and its context.
func (w *Wizard) Exit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.done = true
}
