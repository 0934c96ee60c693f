package imdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"garland/internal/award"
)

// awardName selects the competitive award track; the event pages also list
// honorary, humanitarian, and technical tracks under separate names.
const awardName = "Oscar"

type classicRef struct {
	Name  string `json:"name"`
	Const string `json:"const"`
}

type classicNomination struct {
	IsWinner          bool         `json:"isWinner"`
	Notes             string       `json:"notes"`
	PrimaryNominees   []classicRef `json:"primaryNominees"`
	SecondaryNominees []classicRef `json:"secondaryNominees"`
}

type classicPayload struct {
	NomineesWidgetModel *struct {
		EventEditionSummary struct {
			Awards []struct {
				AwardName  string `json:"awardName"`
				Categories []struct {
					CategoryName string              `json:"categoryName"`
					Nominations  []classicNomination `json:"nominations"`
				} `json:"categories"`
			} `json:"awards"`
		} `json:"eventEditionSummary"`
	} `json:"nomineesWidgetModel"`
}

type nextTitleRef struct {
	Title struct {
		ID        string `json:"id"`
		TitleText struct {
			Text string `json:"text"`
		} `json:"titleText"`
	} `json:"title"`
}

type nextNameRef struct {
	Name struct {
		ID       string `json:"id"`
		NameText struct {
			Text string `json:"text"`
		} `json:"nameText"`
	} `json:"name"`
}

type nextCompanyRef struct {
	Company struct {
		ID          string `json:"id"`
		CompanyText struct {
			Text string `json:"text"`
		} `json:"companyText"`
	} `json:"company"`
}

type nextNomination struct {
	IsWinner bool `json:"isWinner"`
	Notes    *struct {
		PlainText string `json:"plainText"`
	} `json:"notes"`
	AwardedEntities struct {
		Typename                string           `json:"__typename"`
		AwardTitles             []nextTitleRef   `json:"awardTitles"`
		AwardNames              []nextNameRef    `json:"awardNames"`
		SecondaryAwardTitles    []nextTitleRef   `json:"secondaryAwardTitles"`
		SecondaryAwardNames     []nextNameRef    `json:"secondaryAwardNames"`
		SecondaryAwardCompanies []nextCompanyRef `json:"secondaryAwardCompanies"`
	} `json:"awardedEntities"`
}

type nextPayload struct {
	Props *struct {
		PageProps struct {
			Edition struct {
				Awards []struct {
					Text                 string `json:"text"`
					NominationCategories struct {
						Edges []struct {
							Node struct {
								Category *struct {
									Text string `json:"text"`
								} `json:"category"`
								Nominations struct {
									Edges []struct {
										Node nextNomination `json:"node"`
									} `json:"edges"`
								} `json:"nominations"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"nominationCategories"`
				} `json:"awards"`
			} `json:"edition"`
		} `json:"pageProps"`
	} `json:"props"`
}

// Parse decodes a raw event payload into categories, handling both page
// generations.
func Parse(data []byte) ([]award.IMDbCategory, error) {
	var classic classicPayload
	if err := json.Unmarshal(data, &classic); err == nil && classic.NomineesWidgetModel != nil {
		return parseClassic(&classic), nil
	}

	var next nextPayload
	if err := json.Unmarshal(data, &next); err != nil {
		return nil, fmt.Errorf("decode event payload: %w", err)
	}
	if next.Props == nil {
		return nil, errors.New("unrecognized event payload shape")
	}
	return parseNext(&next), nil
}

func parseClassic(payload *classicPayload) []award.IMDbCategory {
	var categories []award.IMDbCategory
	for _, a := range payload.NomineesWidgetModel.EventEditionSummary.Awards {
		if a.AwardName != awardName {
			continue
		}
		for _, c := range a.Categories {
			nominees := make([]award.IMDbNominee, 0, len(c.Nominations))
			for _, n := range c.Nominations {
				titles := refs(n.PrimaryNominees)
				names := refs(n.SecondaryNominees)
				// Some categories list people first; the title side is
				// whichever carries title ids.
				if len(titles) > 0 && !strings.HasPrefix(titles[0].ID, "tt") {
					titles, names = names, titles
				}
				people := toPeople(names)
				if isCountryCategory(c.CategoryName) {
					people = append(people, award.PersonRef{Name: n.Notes})
				}
				nominees = append(nominees, award.IMDbNominee{
					Winner: n.IsWinner,
					Films:  titles,
					People: people,
					Detail: n.Notes,
				})
			}
			categories = append(categories, award.IMDbCategory{Category: c.CategoryName, Nominees: nominees})
		}
	}
	return categories
}

func parseNext(payload *nextPayload) []award.IMDbCategory {
	var categories []award.IMDbCategory
	for _, a := range payload.Props.PageProps.Edition.Awards {
		if a.Text != awardName {
			continue
		}
		for _, edge := range a.NominationCategories.Edges {
			name := ""
			if edge.Node.Category != nil {
				name = edge.Node.Category.Text
			}
			nominees := make([]award.IMDbNominee, 0, len(edge.Node.Nominations.Edges))
			for _, ne := range edge.Node.Nominations.Edges {
				n := ne.Node
				var titles []award.TitleRef
				var people []award.PersonRef

				switch n.AwardedEntities.Typename {
				case "AwardedTitles":
					for _, t := range n.AwardedEntities.AwardTitles {
						titles = append(titles, award.TitleRef{Title: t.Title.TitleText.Text, ID: t.Title.ID})
					}
					for _, p := range n.AwardedEntities.SecondaryAwardNames {
						people = append(people, award.PersonRef{Name: p.Name.NameText.Text, ID: p.Name.ID})
					}
					for _, co := range n.AwardedEntities.SecondaryAwardCompanies {
						people = append(people, award.PersonRef{Name: co.Company.CompanyText.Text, ID: co.Company.ID})
					}
				case "AwardedNames":
					for _, t := range n.AwardedEntities.SecondaryAwardTitles {
						titles = append(titles, award.TitleRef{Title: t.Title.TitleText.Text, ID: t.Title.ID})
					}
					for _, p := range n.AwardedEntities.AwardNames {
						people = append(people, award.PersonRef{Name: p.Name.NameText.Text, ID: p.Name.ID})
					}
				}

				detail := ""
				if n.Notes != nil {
					detail = n.Notes.PlainText
				}
				if isCountryCategory(name) {
					people = append(people, award.PersonRef{Name: detail})
				}
				nominees = append(nominees, award.IMDbNominee{
					Winner: n.IsWinner,
					Films:  titles,
					People: people,
					Detail: detail,
				})
			}
			categories = append(categories, award.IMDbCategory{Category: name, Nominees: nominees})
		}
	}
	return categories
}

// isCountryCategory reports whether nominees in this category represent
// countries; their country name ships in the notes field with no entity id.
func isCountryCategory(name string) bool {
	return strings.Contains(name, "International") || strings.Contains(name, "Foreign")
}

func refs(in []classicRef) []award.TitleRef {
	out := make([]award.TitleRef, 0, len(in))
	for _, r := range in {
		out = append(out, award.TitleRef{Title: r.Name, ID: r.Const})
	}
	return out
}

func toPeople(in []award.TitleRef) []award.PersonRef {
	out := make([]award.PersonRef, 0, len(in))
	for _, r := range in {
		out = append(out, award.PersonRef{Name: r.Title, ID: r.ID})
	}
	return out
}
