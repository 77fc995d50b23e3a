package aggregates

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mthstanley/stockpot/internal/data/repos"
	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
	"github.com/mthstanley/stockpot/internal/platform/dbctx"
)

type ReferenceResolverDeps struct {
	Base BaseDeps

	Ingredients repos.NameRefRepo
	Units       repos.NameRefRepo
}

type referenceResolver struct {
	deps ReferenceResolverDeps
}

func NewReferenceResolver(deps ReferenceResolverDeps) domainagg.ReferenceResolver {
	return newReferenceResolver(deps)
}

func newReferenceResolver(deps ReferenceResolverDeps) *referenceResolver {
	deps.Base = deps.Base.withDefaults()
	return &referenceResolver{deps: deps}
}

func (a *referenceResolver) Contract() domainagg.Contract {
	return domainagg.ReferenceDataContract
}

func (a *referenceResolver) Resolve(ctx context.Context, kind domainagg.ReferenceKind, names []string) (map[string]int, error) {
	const op = "Recipe.ReferenceData.Resolve"
	if a.repoFor(kind) == nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, fmt.Sprintf("no repo for reference kind %q", kind), nil)
	}
	var out map[string]int
	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		ids, err := a.resolveIn(dbc, kind, names)
		if err != nil {
			return err
		}
		out = ids
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolveIn resolves names inside the caller's transaction.
func (a *referenceResolver) resolveIn(dbc dbctx.Context, kind domainagg.ReferenceKind, names []string) (map[string]int, error) {
	repo := a.repoFor(kind)
	if repo == nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, "", fmt.Sprintf("no repo for reference kind %q", kind), nil)
	}
	return resolveNames(dbc, repo, names)
}

func (a *referenceResolver) repoFor(kind domainagg.ReferenceKind) repos.NameRefRepo {
	switch kind {
	case domainagg.ReferenceIngredient:
		return a.deps.Ingredients
	case domainagg.ReferenceUnit:
		return a.deps.Units
	default:
		return nil
	}
}

// resolveNames get-or-creates names in repo's table within dbc and returns
// trimmed name -> id. Concurrent callers converge on the first committed row.
// Names are inserted in sorted order so overlapping inserts on Postgres take
// their row locks in the same order and cannot deadlock.
func resolveNames(dbc dbctx.Context, repo repos.NameRefRepo, names []string) (map[string]int, error) {
	distinct, err := distinctNames(repo.Table(), names)
	if err != nil {
		return nil, err
	}
	if len(distinct) == 0 {
		return map[string]int{}, nil
	}
	if err := repo.InsertIgnore(dbc, distinct); err != nil {
		return nil, err
	}
	ids, err := repo.GetIDsByNames(dbc, distinct)
	if err != nil {
		return nil, err
	}
	for _, name := range distinct {
		if ids[name] == 0 {
			return nil, domainagg.NewError(domainagg.CodeInternal, "", fmt.Sprintf("%s %q was not resolved", repo.Table(), name), nil)
		}
	}
	return ids, nil
}

func distinctNames(table string, names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, ValidationError(fmt.Sprintf("%s name must not be empty", table))
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
