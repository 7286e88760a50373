package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/gabrielbitencourt/dofinance"
	"github.com/gabrielbitencourt/dofinance/docs"
	"github.com/gabrielbitencourt/dofinance/renderer"
	"github.com/gabrielbitencourt/dofinance/store"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expected from the expert
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user manages a football club in the online game dugout-online.com and is here primarily
			to understand the club's finances: current balance, recurring income and costs, and whether
			the club will stay solvent until the end of the season.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.

			The user will assume that you already know his seasons and ledgers, check with the Treasurer
			first to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewScout creates the search-grounded expert for game knowledge.
func NewScout() *Expert {
	return &Expert{
		Name: "Scout",
		Description: `This is an expert scout of the dugout-online.com football game.
		Very well aware of the game's rules, economy, match schedule mechanics and community wisdom.
		Ask the Scout whenever you need recent or grounding information about the game itself.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert of the dugout-online.com football management game: its economy,
			sponsors, ticket income, salaries, maintenance and match calendar. You leverage
			Google Search to ground your assertions in a solid truth.
			You can get the latest game news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewTreasurer creates the expert in charge of the club's ledgers. It answers
// through function calls backed by the local store.
func NewTreasurer(st *store.Store, calendar dofinance.SeasonCalendar) *Expert {

	lib := []Function{seasonsFunc(st), balanceFunc(st), forecastFunc(st, calendar)}

	return &Expert{
		Name: "Treasurer",
		Description: `This is the Treasurer. He is in charge of reading the club's finance ledgers.
		He can list the recorded seasons, summarize a season's income and costs, and project the
		club's balance until the end of the season.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the treasurer of the user's football club.
				You know how to use the Tools to extract relevant information about the club's finances.
				You are part of a team of experts, yours is everything about the club's ledgers. They might
				ask you questions about the club's money, pardon their approximative language and figure
				out what they meant.

				Use the available tools to get information about the club's finances
				  - recorded seasons
				  - season balance and recurring rates
				  - balance forecast until the next season
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func seasonsFunc(st *store.Store) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Seasons",
			Description: `Seasons lists all the seasons recorded in the club's ledgers, with their initial balance.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted list of the recorded seasons with their initial balance.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			seasons, err := st.Seasons(ctx)
			if err != nil {
				return errResponse(id, "Seasons", err)
			}
			out := ""
			for _, s := range seasons {
				out += fmt.Sprintf("- season %d: initial balance %s\n", s.ID, s.InitialBalance)
			}
			if out == "" {
				out = "no seasons recorded yet"
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Seasons",
				Response: map[string]any{
					"output": out,
				},
			}
		},
	}
}

func balanceFunc(st *store.Store) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Balance",
			Description: `Balance summarizes a season's ledger: current balance, season-to-date income
			and costs, and the recurring rates extracted from the records (daily sponsor, average
			ticket income, weekly maintenance).

			` + must(docs.GetTopic("normalize")),
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"season": {
						Type:        genai.TypeInteger,
						Description: `The season number. The latest recorded season is the default.`,
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted summary of the season's finances.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			season, err := parseSeason(ctx, st, args)
			if err != nil {
				return errResponse(id, "Balance", err)
			}
			ledger, err := loadLedger(ctx, st, season.ID)
			if err != nil {
				return errResponse(id, "Balance", err)
			}
			summary := renderer.NewSummary(season, ledger, dofinance.Today())
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Balance",
				Response: map[string]any{
					"output": renderer.SummaryMarkdown(summary),
				},
			}
		},
	}
}

func forecastFunc(st *store.Store, calendar dofinance.SeasonCalendar) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Forecast",
			Description: `Forecast projects the club's balance day by day from the latest record
			until the start of the next season, posting weekly costs on Mondays and ticket income
			on home match days.

			` + must(docs.GetTopic("forecast")),
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"season": {
						Type:        genai.TypeInteger,
						Description: `The season number. The latest recorded season is the default.`,
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted day-by-day balance projection.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			season, err := parseSeason(ctx, st, args)
			if err != nil {
				return errResponse(id, "Forecast", err)
			}
			ledger, err := loadLedger(ctx, st, season.ID)
			if err != nil {
				return errResponse(id, "Forecast", err)
			}
			next, ok := calendar.NextStart(season.ID)
			if !ok {
				return errResponse(id, "Forecast", fmt.Errorf("no start date known for season %d", season.ID+1))
			}
			events, err := st.Events(ctx, season.ID, dofinance.EventMatch, dofinance.Today())
			if err != nil {
				return errResponse(id, "Forecast", err)
			}
			simulated := dofinance.Forecast(ledger, events, dofinance.Today(), next, dofinance.ForecastOptions{})
			report := renderer.NewForecast(season.ID, simulated, next)
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Forecast",
				Response: map[string]any{
					"output": renderer.ForecastMarkdown(report),
				},
			}
		},
	}
}

// loadLedger reads and normalizes a season's ledger from the store. Gap
// faults are logged, the repaired ledger is still usable.
func loadLedger(ctx context.Context, st *store.Store, seasonID int) ([]dofinance.FinanceRecord, error) {
	raw, err := st.RawRecords(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("could not load ledger for season %d: %w", seasonID, err)
	}
	ledger, err := dofinance.Normalize(raw)
	if err != nil {
		log.Printf("season %d ledger has gaps that could not be repaired: %v", seasonID, err)
	}
	return ledger, nil
}

func parseSeason(ctx context.Context, st *store.Store, args map[string]any) (dofinance.Season, error) {
	iseason, hasSeason := args["season"]
	if hasSeason {
		n, ok := iseason.(float64)
		if !ok {
			return dofinance.Season{}, fmt.Errorf("argument 'season' is not a number as expected but %T", iseason)
		}
		season, found, err := st.Season(ctx, int(n))
		if err != nil {
			return dofinance.Season{}, err
		}
		if !found {
			return dofinance.Season{}, fmt.Errorf("season %d is not recorded", int(n))
		}
		return season, nil
	}

	seasons, err := st.Seasons(ctx)
	if err != nil {
		return dofinance.Season{}, err
	}
	if len(seasons) == 0 {
		return dofinance.Season{}, fmt.Errorf("no seasons recorded yet")
	}
	return seasons[len(seasons)-1], nil
}
