package appconf

// Environment names the operating environment the application runs in.
type Environment int

const (
	Development Environment = iota
	Staging
	Production
	Test
)

func (e Environment) String() string {
	switch e {
	case Staging:
		return "staging"
	case Production:
		return "production"
	case Test:
		return "test"
	default:
		return "development"
	}
}

// EnvFromString maps an environment flag value to an Environment, defaulting
// to Development for anything unrecognized.
func EnvFromString(s string) Environment {
	switch s {
	case "staging":
		return Staging
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}
