// meta/meta.go
package meta

// DefaultAddr is the HTTP listen address of the advisor.
const DefaultAddr = ":8080"

// DefaultBrokerURL is the NATS server the broker connects to.
const DefaultBrokerURL = "nats://127.0.0.1:4222"

// DefaultSubject is the NATS subject suggestion requests arrive on.
const DefaultSubject = "klondike.suggest"

// DefaultQueue is the NATS queue group shared by advisors.
const DefaultQueue = "klondike-advisors"

// DefaultHistory is the number of updates a session keeps.
const DefaultHistory = 50

// DefaultDeals is the number of deals an experiment plays.
const DefaultDeals = 100

// MaxSteps caps the suggestions asked for a single position in experiments.
const MaxSteps = 20
