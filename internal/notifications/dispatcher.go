package notifications

import "log"

// Job kinds understood by the mailer.
const (
	KindWelcome      = "welcome"
	KindCancellation = "cancellation"
)

// EmailJob is the queued request to send one transactional email.
type EmailJob struct {
	Kind  string `json:"kind"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Publisher is the slice of the queue client the dispatcher needs.
type Publisher interface {
	PublishEmailJob(job interface{}) error
}

// Dispatcher queues transactional emails. Dispatch is strictly best-effort:
// failures are logged and never reach the request that triggered them.
type Dispatcher struct {
	publisher Publisher
}

// NewDispatcher creates a new Dispatcher. A nil publisher disables delivery,
// which keeps tests and queue-less deployments working.
func NewDispatcher(publisher Publisher) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
	}
}

// SendWelcome queues the signup email.
func (d *Dispatcher) SendWelcome(email, name string) {
	d.dispatch(EmailJob{Kind: KindWelcome, Email: email, Name: name})
}

// SendCancellation queues the account-cancellation email.
func (d *Dispatcher) SendCancellation(email, name string) {
	d.dispatch(EmailJob{Kind: KindCancellation, Email: email, Name: name})
}

func (d *Dispatcher) dispatch(job EmailJob) {
	if d.publisher == nil {
		log.Printf("Email dispatch disabled, skipping %s email for %s", job.Kind, job.Email)
		return
	}
	if err := d.publisher.PublishEmailJob(job); err != nil {
		log.Printf("Failed to queue %s email for %s: %v", job.Kind, job.Email, err)
	}
}
