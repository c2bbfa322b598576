package profile

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"chef-scraper/pkg/models"
	"chef-scraper/pkg/utils"
)

var firstNumber = regexp.MustCompile(`[0-9]+`)

// Stats parses the profile page into a flat ProfileRecord. A missing side
// navigation means the username is invalid; any other structural mismatch
// degrades to a server-error outcome
func (r *Resolver) Stats(ctx context.Context, username string) models.Outcome[models.ProfileRecord] {
	doc, failKind := r.profilePage(ctx, username)
	if failKind != nil {
		return failure[models.ProfileRecord](*failKind)
	}

	sideNav := doc.Find(sideNavSelector)
	if sideNav.Length() == 0 {
		return models.NotFound[models.ProfileRecord](msgInvalidUsername)
	}

	record := models.ProfileRecord{Fields: map[string]string{}}

	// One field per side-nav entry: name from the label, value from either a
	// link target (absolutized if relative) or cleaned text. A leading digit
	// in plan-type values is the star count
	sideNav.Find("li").Each(func(_ int, li *goquery.Selection) {
		label := li.Find("label")
		if label.Length() == 0 {
			return
		}
		key := normalizeKey(label.Text())

		var value string
		if href, ok := li.Find("a").Attr("href"); ok {
			switch {
			case strings.Contains(href, "profile-plan"):
				// Plan values read like "4Star. Valid till ..."; keep the part
				// before the first period
				value = strings.SplitN(utils.CleanText(li.Find("span").Text()), ".", 2)[0]
			case !strings.HasPrefix(href, "https://"):
				value = r.baseURL + href
			default:
				value = href
			}
		} else {
			value = utils.CleanText(li.Find("span").Text())
		}

		if value != "" && value[0] >= '0' && value[0] <= '9' {
			record.TotalStars = int(value[0] - '0')
			value = value[1:]
		}
		record.Fields[key] = value
	})

	parseBadges(doc, &record)

	// Rating, division, ranks and solve counts live at fixed structural
	// locations; absence of any of them means the page shape changed
	header := doc.Find("div.rating-header.text-center").First().Find("div")
	ranks := doc.Find("div.rating-ranks strong")
	counts := doc.Find(solvedSectionSelector).Find("h5")
	if header.Length() < 2 || ranks.Length() < 2 || counts.Length() < 2 {
		return models.ServerError[models.ProfileRecord](msgInternalError)
	}

	ratingText := strings.SplitN(utils.CleanText(header.Eq(0).Text()), "?", 2)[0]
	rating, err := strconv.Atoi(strings.TrimSpace(ratingText))
	if err != nil {
		return models.ServerError[models.ProfileRecord](msgInternalError)
	}
	record.Rating = rating
	record.Division = utils.CleanText(header.Eq(1).Text())

	// Rank fields stay text when the source is non-numeric
	record.GlobalRank = models.ParseRank(strings.TrimSpace(ranks.Eq(0).Text()))
	record.CountryRank = models.ParseRank(strings.TrimSpace(ranks.Eq(1).Text()))

	fully := firstNumber.FindString(counts.Eq(0).Text())
	partially := firstNumber.FindString(counts.Eq(1).Text())
	if fully == "" || partially == "" {
		return models.ServerError[models.ProfileRecord](msgInternalError)
	}
	record.ProblemsFullySolved, _ = strconv.Atoi(fully)
	record.ProblemsPartiallySolved, _ = strconv.Atoi(partially)

	// Contest history may legitimately be absent; count defaults to 0
	if article := doc.Find(solvedSectionSelector).Find("article"); article.Length() > 0 {
		if n := article.Find("p").Length() - 1; n > 0 {
			record.ContestsParticipated = n
		}
	}

	return models.Ok(record)
}

// parseBadges reads the badge widgets as "name - level" pairs. When a widget
// doesn't split as expected the raw first widget text is kept as a fallback
func parseBadges(doc *goquery.Document, record *models.ProfileRecord) {
	widgets := doc.Find("p.badge__title")
	if widgets.Length() == 0 {
		return
	}

	badges := make(map[string]string, widgets.Length())
	ok := true
	widgets.EachWithBreak(func(_ int, w *goquery.Selection) bool {
		parts := strings.SplitN(w.Text(), "-", 2)
		if len(parts) != 2 {
			ok = false
			return false
		}
		badges[normalizeKey(parts[0])] = normalizeKey(parts[1])
		return true
	})

	if ok {
		record.Badges = badges
	} else {
		record.BadgeNote = widgets.First().Text()
	}
}

// normalizeKey lower-cases a page label, replaces spaces with underscores and
// strips colons
func normalizeKey(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	key = strings.ReplaceAll(key, ":", "")
	return strings.ReplaceAll(key, " ", "_")
}
