package scan

// Notifier receives progress events from a running scan. The orchestrator
// depends only on this interface so hosts can surface progress however
// they like and tests can substitute a recording stub.
//
// Events for one scan are delivered serially; implementations do not need
// internal locking.
type Notifier interface {
	// Started signals that a scan began and discovery is running.
	Started()

	// Idle signals that discovery found nothing to do (no workspace root
	// or no supported files). The scan still terminates successfully.
	Idle()

	// Progress is emitted after each file completes, success or failure.
	// Percent is completed/total rounded to two decimals.
	Progress(completed, total int, percent float64)

	// Finished signals successful termination with aggregate counts.
	// The host should keep this visible until the next scan starts.
	Finished(stats Stats)

	// Failed signals a structural failure of the scan itself. Per-file
	// extraction failures never reach this path.
	Failed(err error)
}

// NoOpNotifier discards all events.
type NoOpNotifier struct{}

func (NoOpNotifier) Started()                   {}
func (NoOpNotifier) Idle()                      {}
func (NoOpNotifier) Progress(int, int, float64) {}
func (NoOpNotifier) Finished(Stats)             {}
func (NoOpNotifier) Failed(error)               {}
