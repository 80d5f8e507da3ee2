// Package reconcile fuses per-publication fields from OpenAlex, Crossref
// and the optional landing-page scrape under a fixed precedence policy,
// and derives the categorical attributes via the classifier strategies.
//
// Precedence: Crossref overrides OpenAlex for publisher, volume, issue and
// pages; the ISSN sets of both sources are unioned, never replaced. A field
// absent from every source resolves to the empty string, never to a null.
package reconcile

import (
	"github.com/unikom-riset/bibliometrics/internal/classify"
	"github.com/unikom-riset/bibliometrics/internal/domain"
	"github.com/unikom-riset/bibliometrics/internal/sources/crossref"
	"github.com/unikom-riset/bibliometrics/internal/sources/doipage"
	"github.com/unikom-riset/bibliometrics/internal/sources/openalex"
)

// unknownJournal keys publications whose venue no source could name.
const unknownJournal = "Unknown"

// topicLimit, grantLimit and researchAreaLimit truncate the "; "-joined
// derived lists.
const (
	topicLimit        = 3
	grantLimit        = 3
	researchAreaLimit = 5
)

// Publication reconciles one OpenAlex work with its optional Crossref
// record and landing-page scrape into a domain.Publication. cr and page may
// be nil; inDOAJ reports the journal's DOAJ membership lookup.
func Publication(work *openalex.Work, cr *crossref.Work, page *doipage.PageRecord, inDOAJ bool, cls classify.Set) domain.Publication {
	source := workSource(work)
	doi := domain.NormalizeDOI(work.DOI)

	journalName := source.DisplayName
	if journalName == "" && cr != nil {
		journalName = cr.JournalName()
	}
	if journalName == "" {
		journalName = unknownJournal
	}

	issn := mergedISSN(cr, source)
	openAlexID := domain.NormalizeOpenAlexID(work.ID)

	pub := domain.Publication{
		PublicationKey: domain.DeriveKey(domain.KeyPrefixPublication, openAlexID),
		JournalKey:     domain.DeriveKey(domain.KeyPrefixJournal, journalName, issn),
		OpenAlexID:     openAlexID,
		DOI:            doi,
		Title:          domain.CleanText(work.Title),
		Year:           work.PublicationYear,
		Type:           work.Type,
		CitedByCount:   work.CitedByCount,
		AuthorCount:    len(work.Authorships),
		JournalName:    journalName,
		ISSN:           issn,
	}

	if work.OpenAccess != nil {
		pub.OpenAccess = work.OpenAccess.IsOA
		pub.OAStatus = work.OpenAccess.OAStatus
	}

	// Crossref wins for the contested bibliographic fields.
	pub.Publisher = firstNonEmpty(crossrefPublisher(cr), source.HostOrganizationName)
	pub.Volume = firstNonEmpty(crossrefVolume(cr), work.Biblio.Volume)
	pub.Issue = firstNonEmpty(crossrefIssue(cr), work.Biblio.Issue)
	pub.Pages = reconcilePages(cr, work, page)

	pub.Abstract = reconcileAbstract(work, cr, page)
	pub.Keywords = reconcileKeywords(work, page)
	pub.Topics = topicsOf(work)
	pub.SDGs = sdgsOf(work)
	pub.Grants = grantsOf(work)

	pub.ReferenceCount = referenceCount(work, cr, page)

	if pub.Type == "" && page != nil {
		pub.Type = page.ArticleType
	}

	pub.Indexing = cls.Indexing.Indexing(sourceIDs(work), doi != "", inDOAJ)
	pub.QualityTier = cls.Quality.Quality(work.CitedByCount, work.PublicationYear, pub.OpenAccess)

	return pub
}

// mergedISSN unions the Crossref ISSN list with the OpenAlex source's issn
// list and issn_l.
func mergedISSN(cr *crossref.Work, source openalex.Source) string {
	var crossrefSet []string
	if cr != nil {
		crossrefSet = cr.ISSN
	}
	openalexSet := append(append([]string{}, source.ISSN...), source.ISSNL)
	return domain.MergeISSN(crossrefSet, openalexSet)
}

func reconcilePages(cr *crossref.Work, work *openalex.Work, page *doipage.PageRecord) string {
	if cr != nil && cr.Page != "" {
		return cr.Page
	}
	// OpenAlex pages only when both ends are known.
	if work.Biblio.FirstPage != "" && work.Biblio.LastPage != "" {
		return work.Biblio.FirstPage + "-" + work.Biblio.LastPage
	}
	if page != nil {
		return page.PageRange
	}
	return ""
}

// reconcileAbstract prefers the locally reconstructed inverted-index text,
// then the Crossref abstract, then the scraped one.
func reconcileAbstract(work *openalex.Work, cr *crossref.Work, page *doipage.PageRecord) string {
	if text := openalex.ReconstructAbstract(work.AbstractInvertedIndex); text != "" {
		return domain.CleanText(text)
	}
	if cr != nil && cr.Abstract != "" {
		return domain.CleanText(cr.Abstract)
	}
	if page != nil {
		return domain.CleanText(page.Abstract)
	}
	return ""
}

func reconcileKeywords(work *openalex.Work, page *doipage.PageRecord) string {
	if len(work.Keywords) > 0 {
		labels := make([]string, 0, len(work.Keywords))
		for _, k := range work.Keywords {
			labels = append(labels, k.DisplayName)
		}
		return domain.JoinSet(labels)
	}
	if page != nil {
		return page.Keywords
	}
	return ""
}

func topicsOf(work *openalex.Work) string {
	labels := make([]string, 0, topicLimit)
	for i, t := range work.Topics {
		if i == topicLimit {
			break
		}
		labels = append(labels, t.DisplayName)
	}
	return domain.JoinSet(labels)
}

func sdgsOf(work *openalex.Work) string {
	labels := make([]string, 0, len(work.SDGs))
	for _, s := range work.SDGs {
		labels = append(labels, s.DisplayName)
	}
	return domain.JoinSet(labels)
}

func grantsOf(work *openalex.Work) string {
	labels := make([]string, 0, grantLimit)
	for i, g := range work.Grants {
		if i == grantLimit {
			break
		}
		labels = append(labels, g.FunderDisplayName)
	}
	return domain.JoinSet(labels)
}

func referenceCount(work *openalex.Work, cr *crossref.Work, page *doipage.PageRecord) int {
	if work.ReferencedWorksCount > 0 {
		return work.ReferencedWorksCount
	}
	if cr != nil && cr.ReferenceCount > 0 {
		return cr.ReferenceCount
	}
	if page != nil {
		return page.ReferencesCount
	}
	return 0
}

// sourceIDs collects the source IDs of the primary location and every
// other location, for indexing classification.
func sourceIDs(work *openalex.Work) []string {
	var ids []string
	if work.PrimaryLocation != nil && work.PrimaryLocation.Source != nil {
		ids = append(ids, work.PrimaryLocation.Source.ID)
	}
	for _, loc := range work.Locations {
		if loc.Source != nil {
			ids = append(ids, loc.Source.ID)
		}
	}
	return ids
}

func workSource(work *openalex.Work) openalex.Source {
	if work.PrimaryLocation != nil && work.PrimaryLocation.Source != nil {
		return *work.PrimaryLocation.Source
	}
	return openalex.Source{}
}

func crossrefPublisher(cr *crossref.Work) string {
	if cr == nil {
		return ""
	}
	return cr.Publisher
}

func crossrefVolume(cr *crossref.Work) string {
	if cr == nil {
		return ""
	}
	return cr.Volume
}

func crossrefIssue(cr *crossref.Work) string {
	if cr == nil {
		return ""
	}
	return cr.Issue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
