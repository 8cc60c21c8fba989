package domain

// Alias is the lifecycle label a registered model attaches to one of its
// versions. A model has at most one version per alias at any time.
type Alias string

const (
	// AliasChampion marks the version serving production traffic.
	AliasChampion Alias = "champion"
	// AliasChallenger marks a version that beat the champion and is
	// waiting for an approved promotion.
	AliasChallenger Alias = "challenger"
	// AliasCandidate marks a version that passed production criteria but
	// did not beat the champion.
	AliasCandidate Alias = "candidate"
	// AliasDefeated marks a former champion replaced by a promotion.
	AliasDefeated Alias = "defeated"
)

func ParseAlias(s string) (Alias, error) {
	a := Alias(s)
	if !a.Valid() {
		return "", ErrInvalidAlias
	}
	return a, nil
}

func (a Alias) Valid() bool {
	switch a {
	case AliasChampion, AliasChallenger, AliasCandidate, AliasDefeated:
		return true
	}
	return false
}

func (a Alias) String() string {
	return string(a)
}
