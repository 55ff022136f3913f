package brewcli

import "fmt"

// FakeClient is an in-memory implementation for unit tests. Mutations are
// recorded in call order so tests can assert on invocation sequences.
type FakeClient struct {
	Formulae []string
	Casks    []string

	SearchResults map[string][]string

	// InstallErrs maps package names to the error Install should return.
	InstallErrs   map[string]error
	UninstallErrs map[string]error

	// ListErr, when set, is returned by both listing methods.
	ListErr error

	// InstallCalls records every Install invocation in order.
	InstallCalls []Package
	// UninstallCalls records every Uninstall invocation in order.
	UninstallCalls []string
}

func NewFake() *FakeClient {
	return &FakeClient{
		SearchResults: map[string][]string{},
		InstallErrs:   map[string]error{},
		UninstallErrs: map[string]error{},
	}
}

func (f *FakeClient) ListFormulae() ([]string, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]string(nil), f.Formulae...), nil
}

func (f *FakeClient) ListCasks() ([]string, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]string(nil), f.Casks...), nil
}

func (f *FakeClient) Search(query string) ([]string, error) {
	return append([]string(nil), f.SearchResults[query]...), nil
}

func (f *FakeClient) Install(pkg Package) error {
	f.InstallCalls = append(f.InstallCalls, pkg)
	if err, ok := f.InstallErrs[pkg.Name]; ok {
		return err
	}
	// mimic a successful install by adding to the listing
	switch pkg.Kind {
	case KindCask:
		f.Casks = append(f.Casks, pkg.Name)
	default:
		f.Formulae = append(f.Formulae, pkg.Name)
	}
	return nil
}

func (f *FakeClient) Uninstall(name string) error {
	f.UninstallCalls = append(f.UninstallCalls, name)
	if err, ok := f.UninstallErrs[name]; ok {
		return err
	}
	f.Formulae = remove(f.Formulae, name)
	f.Casks = remove(f.Casks, name)
	return nil
}

func remove(list []string, name string) []string {
	out := list[:0]
	for _, s := range list {
		if s != name {
			out = append(out, s)
		}
	}
	return out
}

// FailInstall is a convenience for wiring a CommandError into InstallErrs.
func FailInstall(name string) error {
	return &CommandError{
		Args:     []string{"install", name},
		ExitCode: 1,
		Stderr:   fmt.Sprintf("Error: No available formula with the name %q", name),
	}
}
