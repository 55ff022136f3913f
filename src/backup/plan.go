package backup

import "brew-backup/src/brewcli"

// Plan splits desired packages into those needing installation and those
// already present, so a restore can be previewed before anything runs.
type Plan struct {
	ToInstall        []brewcli.Package
	AlreadyInstalled []brewcli.Package
}

// BuildPlan compares the desired entries against the currently installed
// formulae and casks. Desired order is preserved in both plan halves.
func BuildPlan(formulae, casks []string, desired []brewcli.Package) Plan {
	installed := make(map[string]struct{}, len(formulae)+len(casks))
	for _, name := range formulae {
		installed[name] = struct{}{}
	}
	for _, name := range casks {
		installed[name] = struct{}{}
	}

	var plan Plan
	for _, pkg := range desired {
		if _, ok := installed[pkg.Name]; ok {
			plan.AlreadyInstalled = append(plan.AlreadyInstalled, pkg)
		} else {
			plan.ToInstall = append(plan.ToInstall, pkg)
		}
	}
	return plan
}

// CurrentPlan fetches the live listings from brew and builds a plan.
func CurrentPlan(client brewcli.Client, desired []brewcli.Package) (Plan, error) {
	formulae, err := client.ListFormulae()
	if err != nil {
		return Plan{}, err
	}
	casks, err := client.ListCasks()
	if err != nil {
		return Plan{}, err
	}
	return BuildPlan(formulae, casks, desired), nil
}
