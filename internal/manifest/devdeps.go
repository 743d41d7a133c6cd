package manifest

import (
	"fmt"
	"maps"

	"github.com/Masterminds/semver/v3"
)

// devDependencies is added to every generated package.json.
var devDependencies = map[string]string{
	"codacy-coverage":           "^3.4.0",
	"eslint":                    "^6.3.0",
	"eslint-config-airbnb-base": "^14.0.0",
	"eslint-config-prettier":    "^6.3.0",
	"eslint-plugin-import":      "^2.18.2",
	"eslint-plugin-prettier":    "^3.1.0",
	"prettier":                  "^1.18.2",
	"jest":                      "^24.9.0",
	"nodemon":                   "^1.19.2",
	"husky":                     "^3.0.5",
	"lint-staged":               "^9.2.5",
}

func init() {
	if err := ValidateRanges(devDependencies); err != nil {
		panic(err)
	}
}

// DevDependencies returns a copy of the static dev-dependency table.
func DevDependencies() map[string]string {
	return maps.Clone(devDependencies)
}

// ValidateRanges checks that every value is a semver range npm understands.
func ValidateRanges(deps map[string]string) error {
	for name, rng := range deps {
		if _, err := semver.NewConstraint(rng); err != nil {
			return fmt.Errorf("dev dependency %s: invalid range %q: %w", name, rng, err)
		}
	}
	return nil
}
