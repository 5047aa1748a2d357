// Package transcript turns an ordered slice of actor-tagged messages into
// display blocks: actor grouping, display labels, the progress placeholder
// and relative timestamps. It has no terminal or styling dependencies.
package transcript

// Actor identifies who produced a message.
type Actor string

const (
	ActorUser      Actor = "user"
	ActorSystem    Actor = "system"
	ActorManager   Actor = "manager"
	ActorPlanner   Actor = "planner"
	ActorNavigator Actor = "navigator"
	ActorValidator Actor = "validator"
	ActorEvaluator Actor = "evaluator"
)

// ActorProfile is the static description of an actor.
type ActorProfile struct {
	Name string
}

var actorProfiles = map[Actor]ActorProfile{
	ActorUser:      {Name: "User"},
	ActorSystem:    {Name: "System"},
	ActorManager:   {Name: "Manager"},
	ActorPlanner:   {Name: "Planner"},
	ActorNavigator: {Name: "Navigator"},
	ActorValidator: {Name: "Validator"},
	ActorEvaluator: {Name: "Evaluator"},
}

// LookupProfile returns the profile for actor. The table is read-only.
func LookupProfile(actor Actor) (ActorProfile, bool) {
	p, ok := actorProfiles[actor]
	return p, ok
}

// Actors returns the known actor identifiers in a stable order.
func Actors() []Actor {
	return []Actor{
		ActorUser, ActorSystem, ActorManager, ActorPlanner,
		ActorNavigator, ActorValidator, ActorEvaluator,
	}
}

var displayNames = map[string]string{
	"Planner":   "Planning",
	"Navigator": "Navigating",
	"Validator": "Validating",
	"System":    "System",
	"Manager":   "Managing",
	"Evaluator": "Evaluating",
}

// DisplayName maps a profile name to the label shown above its messages.
// Names without an entry are returned unchanged.
func DisplayName(name string) string {
	if label, ok := displayNames[name]; ok {
		return label
	}
	return name
}
