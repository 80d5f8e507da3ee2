package reconcile

import (
	"strings"

	"github.com/unikom-riset/bibliometrics/internal/classify"
	"github.com/unikom-riset/bibliometrics/internal/domain"
	"github.com/unikom-riset/bibliometrics/internal/sources/openalex"
)

// Author maps an OpenAlex author record into a domain.Author, deriving the
// faculty, program and research areas from its concept labels.
// defaultInstitution fills in when the record carries no affiliation.
func Author(a *openalex.Author, defaultInstitution string, cls classify.Set) domain.Author {
	openAlexID := domain.NormalizeOpenAlexID(a.ID)
	concepts := conceptLabels(a.Concepts)
	faculty := cls.Faculty.Faculty(concepts)

	institution := defaultInstitution
	if len(a.Institutions) > 0 && a.Institutions[0].DisplayName != "" {
		institution = a.Institutions[0].DisplayName
	}

	return domain.Author{
		AuthorKey:     domain.DeriveKey(domain.KeyPrefixAuthor, openAlexID),
		OpenAlexID:    openAlexID,
		ORCID:         domain.NormalizeORCID(a.Orcid),
		DisplayName:   a.DisplayName,
		Institution:   domain.NormalizeInstitution(institution),
		Faculty:       faculty,
		Program:       cls.Program.Program(concepts, faculty),
		ResearchAreas: researchAreas(concepts),
		WorksCount:    a.WorksCount,
		CitedByCount:  a.CitedByCount,
		HIndex:        a.SummaryStats.HIndex,
		I10Index:      a.SummaryStats.I10Index,
	}
}

// Authorship finds the collected author in the work's authorship list by
// case-insensitive exact display-name match and derives the role from the
// author position. Returns nil when the name is absent; that is a silent
// skip, not an error.
func Authorship(work *openalex.Work, authorKey, displayName string) *domain.Authorship {
	for _, entry := range work.Authorships {
		if !strings.EqualFold(entry.Author.DisplayName, displayName) {
			continue
		}

		institutions := make([]string, 0, len(entry.Institutions))
		for _, inst := range entry.Institutions {
			institutions = append(institutions, inst.DisplayName)
		}

		return &domain.Authorship{
			AuthorKey:      authorKey,
			PublicationKey: domain.DeriveKey(domain.KeyPrefixPublication, domain.NormalizeOpenAlexID(work.ID)),
			Role:           roleForPosition(entry.AuthorPosition),
			AuthorPosition: entry.AuthorPosition,
			Institutions:   domain.JoinSet(institutions),
		}
	}
	return nil
}

func roleForPosition(position string) string {
	switch position {
	case "first":
		return domain.RoleLeadAuthor
	case "last":
		return domain.RoleCorrespondingAuthor
	default:
		return domain.RoleCoAuthor
	}
}

func conceptLabels(concepts []openalex.Concept) []string {
	labels := make([]string, 0, len(concepts))
	for _, c := range concepts {
		labels = append(labels, c.DisplayName)
	}
	return labels
}

func researchAreas(concepts []string) string {
	if len(concepts) > researchAreaLimit {
		concepts = concepts[:researchAreaLimit]
	}
	return domain.JoinSet(concepts)
}
