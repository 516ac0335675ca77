package grade

// Assignment maps each aptitude to the grade tier the player currently has.
// It is owned by the caller and passed into every rating computation.
type Assignment map[Aptitude]Tier

// Default assigns the highest tier to every aptitude.
func Default() Assignment {
	a := make(Assignment, len(aptitudes))
	for _, apt := range aptitudes {
		a[apt] = TierSA
	}
	return a
}

// Lookup returns the tier assigned to apt, if any.
func (a Assignment) Lookup(apt Aptitude) (Tier, bool) {
	if apt == None || a == nil {
		return "", false
	}
	t, ok := a[apt]
	if !ok || !t.Valid() {
		return "", false
	}
	return t, true
}

// Set validates both labels and records the tier for the aptitude.
func (a Assignment) Set(aptitude, tier string) (Aptitude, Tier, error) {
	apt, err := ParseAptitude(aptitude)
	if err != nil {
		return None, "", err
	}
	t, err := ParseTier(tier)
	if err != nil {
		return None, "", err
	}
	a[apt] = t
	return apt, t, nil
}

// Clone returns an independent copy.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
