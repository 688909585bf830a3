package desk

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/borrowdesk/library/features/command/addbooktocatalog"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/createnotification"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/deactivatebook"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/decideborrowrequest"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/markborrowrequestoverdue"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/marknotificationread"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/payfine"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/returnborrowedbook"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/submitborrowrequest"
	"github.com/AntonStoeckl/borrowdesk/library/features/command/upsertfine"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/bookavailability"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/borrowrequests"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/fines"
	"github.com/AntonStoeckl/borrowdesk/library/features/query/notifications"
	"github.com/AntonStoeckl/borrowdesk/library/notify"
	"github.com/AntonStoeckl/borrowdesk/library/shared/core"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell/observable"
)

// Desk runs the borrow desk use cases against one event store.
type Desk struct {
	addBook          shell.CoreCommandHandler[addbooktocatalog.Command]
	changeActivation shell.CoreCommandHandler[deactivatebook.Command]
	submit           shell.CoreCommandHandler[submitborrowrequest.Command]
	decide           shell.CoreCommandHandler[decideborrowrequest.Command]
	returnBook       shell.CoreCommandHandler[returnborrowedbook.Command]
	markOverdue      shell.CoreCommandHandler[markborrowrequestoverdue.Command]
	upsertFine       shell.CoreCommandHandler[upsertfine.Command]
	payFine          shell.CoreCommandHandler[payfine.Command]
	markRead         shell.CoreCommandHandler[marknotificationread.Command]

	borrowRequests   shell.CoreQueryHandler[borrowrequests.Query, borrowrequests.BorrowRequests]
	bookAvailability shell.CoreQueryHandler[bookavailability.Query, bookavailability.BookAvailability]
	fines            shell.CoreQueryHandler[fines.Query, fines.Fines]
	notifications    shell.CoreQueryHandler[notifications.Query, notifications.Notifications]

	trigger *notify.Trigger

	finePerDay       decimal.Decimal
	loanPolicy       core.LoanPolicy
	adminUserIDs     []core.UserIDString
	logger           *slog.Logger
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	publisher        notify.Publisher
	now              func() time.Time
}

type Option func(*Desk)

func WithFinePerDay(finePerDay decimal.Decimal) Option {
	return func(d *Desk) {
		d.finePerDay = finePerDay
	}
}

func WithLoanPolicy(policy core.LoanPolicy) Option {
	return func(d *Desk) {
		d.loanPolicy = policy
	}
}

// WithAdminUserIDs sets the users that are notified about new borrow requests.
func WithAdminUserIDs(adminUserIDs ...core.UserIDString) Option {
	return func(d *Desk) {
		d.adminUserIDs = adminUserIDs
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(d *Desk) {
		d.logger = logger
	}
}

// WithContextualLogger replaces the logger of the handler wrappers, e.g. with the otelslog bridge.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(d *Desk) {
		d.contextualLogger = logger
	}
}

func WithMetrics(collector shell.MetricsCollector) Option {
	return func(d *Desk) {
		d.metricsCollector = collector
	}
}

func WithTracing(collector shell.TracingCollector) Option {
	return func(d *Desk) {
		d.tracingCollector = collector
	}
}

func WithPublisher(publisher notify.Publisher) Option {
	return func(d *Desk) {
		d.publisher = publisher
	}
}

// WithClock replaces time.Now for all commands and notifications.
func WithClock(now func() time.Time) Option {
	return func(d *Desk) {
		d.now = now
	}
}

// New builds a Desk on top of eventStore.
func New(eventStore shell.EventStore, options ...Option) (*Desk, error) {
	d := &Desk{
		finePerDay: core.DefaultFinePerDay,
		loanPolicy: core.DefaultLoanPolicy(),
		logger:     slog.Default(),
		now:        time.Now,
	}

	for _, option := range options {
		option(d)
	}

	if d.contextualLogger == nil {
		d.contextualLogger = d.logger
	}

	var err error

	addbooktocatalogHandler := addbooktocatalog.NewCommandHandler(eventStore, d.retryOptions(addbooktocatalog.Command{})...)
	if d.addBook, err = wrapCommand[addbooktocatalog.Command](d, addbooktocatalogHandler); err != nil {
		return nil, err
	}

	deactivatebookHandler := deactivatebook.NewCommandHandler(eventStore, d.retryOptions(deactivatebook.Command{})...)
	if d.changeActivation, err = wrapCommand[deactivatebook.Command](d, deactivatebookHandler); err != nil {
		return nil, err
	}

	submitborrowrequestHandler := submitborrowrequest.NewCommandHandler(eventStore, d.loanPolicy, d.retryOptions(submitborrowrequest.Command{})...)
	if d.submit, err = wrapCommand[submitborrowrequest.Command](d, submitborrowrequestHandler); err != nil {
		return nil, err
	}

	decideborrowrequestHandler := decideborrowrequest.NewCommandHandler(eventStore, d.retryOptions(decideborrowrequest.Command{})...)
	if d.decide, err = wrapCommand[decideborrowrequest.Command](d, decideborrowrequestHandler); err != nil {
		return nil, err
	}

	returnborrowedbookHandler := returnborrowedbook.NewCommandHandler(eventStore, d.retryOptions(returnborrowedbook.Command{})...)
	if d.returnBook, err = wrapCommand[returnborrowedbook.Command](d, returnborrowedbookHandler); err != nil {
		return nil, err
	}

	markborrowrequestoverdueHandler := markborrowrequestoverdue.NewCommandHandler(eventStore, d.retryOptions(markborrowrequestoverdue.Command{})...)
	if d.markOverdue, err = wrapCommand[markborrowrequestoverdue.Command](d, markborrowrequestoverdueHandler); err != nil {
		return nil, err
	}

	upsertfineHandler := upsertfine.NewCommandHandler(eventStore, d.retryOptions(upsertfine.Command{})...)
	if d.upsertFine, err = wrapCommand[upsertfine.Command](d, upsertfineHandler); err != nil {
		return nil, err
	}

	payfineHandler := payfine.NewCommandHandler(eventStore, d.retryOptions(payfine.Command{})...)
	if d.payFine, err = wrapCommand[payfine.Command](d, payfineHandler); err != nil {
		return nil, err
	}

	marknotificationreadHandler := marknotificationread.NewCommandHandler(eventStore, d.retryOptions(marknotificationread.Command{})...)
	if d.markRead, err = wrapCommand[marknotificationread.Command](d, marknotificationreadHandler); err != nil {
		return nil, err
	}

	createnotificationHandler := createnotification.NewCommandHandler(eventStore, d.retryOptions(createnotification.Command{})...)
	createNotification, err := wrapCommand[createnotification.Command](d, createnotificationHandler)
	if err != nil {
		return nil, err
	}

	if d.borrowRequests, err = wrapQuery[borrowrequests.Query, borrowrequests.BorrowRequests](d, borrowrequests.NewQueryHandler(eventStore)); err != nil {
		return nil, err
	}

	if d.bookAvailability, err = wrapQuery[bookavailability.Query, bookavailability.BookAvailability](d, bookavailability.NewQueryHandler(eventStore)); err != nil {
		return nil, err
	}

	if d.fines, err = wrapQuery[fines.Query, fines.Fines](d, fines.NewQueryHandler(eventStore)); err != nil {
		return nil, err
	}

	if d.notifications, err = wrapQuery[notifications.Query, notifications.Notifications](d, notifications.NewQueryHandler(eventStore)); err != nil {
		return nil, err
	}

	triggerOptions := []notify.Option{notify.WithLogger(d.logger), notify.WithClock(d.now)}
	if d.publisher != nil {
		triggerOptions = append(triggerOptions, notify.WithPublisher(d.publisher))
	}

	d.trigger = notify.NewTrigger(createNotification, triggerOptions...)

	return d, nil
}

// FinePerDay is the configured daily fine.
func (d *Desk) FinePerDay() decimal.Decimal {
	return d.finePerDay
}

// Now is the desk's clock.
func (d *Desk) Now() time.Time {
	return d.now()
}

func (d *Desk) retryOptions(command shell.Command) []shell.RetryOption {
	if d.metricsCollector == nil {
		return nil
	}

	return []shell.RetryOption{shell.WithMetrics(d.metricsCollector, command.CommandType())}
}

func wrapCommand[C shell.Command](d *Desk, handler shell.CoreCommandHandler[C]) (shell.CoreCommandHandler[C], error) {
	options := []observable.CommandOption[C]{
		observable.WithCommandContextualLogging[C](d.contextualLogger),
	}

	if d.metricsCollector != nil {
		options = append(options, observable.WithCommandMetrics[C](d.metricsCollector))
	}

	if d.tracingCollector != nil {
		options = append(options, observable.WithCommandTracing[C](d.tracingCollector))
	}

	return observable.NewCommandWrapper(handler, options...)
}

func wrapQuery[Q shell.Query, R shell.QueryResult](
	d *Desk,
	handler shell.CoreQueryHandler[Q, R],
) (shell.CoreQueryHandler[Q, R], error) {

	options := []observable.QueryOption[Q, R]{
		observable.WithQueryContextualLogging[Q, R](d.contextualLogger),
	}

	if d.metricsCollector != nil {
		options = append(options, observable.WithQueryMetrics[Q, R](d.metricsCollector))
	}

	if d.tracingCollector != nil {
		options = append(options, observable.WithQueryTracing[Q, R](d.tracingCollector))
	}

	return observable.NewQueryWrapper(handler, options...)
}
