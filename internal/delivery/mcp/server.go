// Package mcp exposes the price-comparison engine and the weather service
// as Model Context Protocol tools over streamable HTTP.
package mcp

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tolmol/backend/internal/domain"
	"github.com/tolmol/backend/internal/usecase"
)

// Server wraps an MCP server with its tool dependencies
type Server struct {
	mcp      *mcp.Server
	shopping *usecase.ShoppingService
	weather  *usecase.WeatherService
}

// NewServer creates the MCP server and registers all tools
func NewServer(shopping *usecase.ShoppingService, weather *usecase.WeatherService, version string) *Server {
	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    "tolmol-backend",
			Version: version,
		}, nil),
		shopping: shopping,
		weather:  weather,
	}

	s.registerPriceTools()
	s.registerWeatherTools()

	return s
}

// Handler returns an http.Handler serving the MCP streamable HTTP transport
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

type priceItemInput struct {
	ProductName string `json:"product_name" jsonschema:"required,Product name, e.g. cow milk"`
	BrandName   string `json:"brand_name,omitempty" jsonschema:"Brand to require, e.g. Amul"`
	Size        string `json:"size,omitempty" jsonschema:"Pack size to require, e.g. 500ml"`
	Query       string `json:"query,omitempty" jsonschema:"Extra free-text search terms"`
}

type priceComparisonInput struct {
	Items    []priceItemInput `json:"items" jsonschema:"required,Shopping list items to price"`
	Location string           `json:"location,omitempty" jsonschema:"City or area to shop in (default: Mumbai)"`
}

type priceComparisonOutput struct {
	Location    string                `json:"location" jsonschema:"Resolved location"`
	Coordinates domain.Coordinates    `json:"coordinates" jsonschema:"Resolved coordinates"`
	Items       []domain.MatchResult  `json:"items" jsonschema:"One normalized result per requested item"`
	Stores      []domain.StoreSummary `json:"stores" jsonschema:"Per-store cart summaries, best value first"`
	TotalItems  int                   `json:"totalItems" jsonschema:"Number of items requested"`
	Timestamp   time.Time             `json:"timestamp" jsonschema:"When the comparison ran"`
}

func (s *Server) registerPriceTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "fetch_price_comparison",
		Description: "Compare grocery prices across quick-commerce stores (Swiggy Instamart, Blinkit, Zepto, BBNow, DMart) for a shopping list. Items with a brand or size only match products that actually carry them. Returns one row per store per item plus a per-store cart summary.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args priceComparisonInput) (*mcp.CallToolResult, priceComparisonOutput, error) {
		items := make([]domain.StructuredItem, len(args.Items))
		for i, in := range args.Items {
			items[i] = domain.StructuredItem{
				ProductName: in.ProductName,
				BrandName:   in.BrandName,
				Size:        in.Size,
				Query:       in.Query,
			}
		}

		result, err := s.shopping.MatchItems(ctx, items, args.Location, usecase.ModeStrict)
		if err != nil {
			return nil, priceComparisonOutput{}, err
		}

		stores := s.shopping.Roster().BuildStoreComparison(result)

		output := priceComparisonOutput{
			Location:    result.Location,
			Coordinates: result.Coordinates,
			Items:       result.Results,
			Stores:      stores,
			TotalItems:  result.TotalItems,
			Timestamp:   result.Timestamp,
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: formatComparisonText(result, stores)},
			},
		}, output, nil
	})
}

type weatherInput struct {
	City                 string `json:"city" jsonschema:"required,City name, e.g. Mumbai"`
	Days                 int    `json:"days,omitempty" jsonschema:"Forecast days 1-16 (default: 1)"`
	IncludeHumidity      bool   `json:"include_humidity,omitempty" jsonschema:"Include relative humidity"`
	IncludePrecipitation bool   `json:"include_precipitation,omitempty" jsonschema:"Include precipitation"`
	IncludeWindSpeed     bool   `json:"include_wind_speed,omitempty" jsonschema:"Include wind speed"`
}

type weatherOutput struct {
	City        string                `json:"requestedCity" jsonschema:"City as requested"`
	DisplayName string                `json:"resolvedLocation" jsonschema:"Geocoded location name"`
	Summary     domain.WeatherSummary `json:"summary" jsonschema:"Headline temperatures and description"`
	GeneratedAt time.Time             `json:"generatedAt" jsonschema:"When the forecast was generated"`
}

func (s *Server) registerWeatherTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_weather_forecast",
		Description: "Get an hourly weather forecast summary for a city: current, average, min and max temperature plus a plain-language description.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args weatherInput) (*mcp.CallToolResult, weatherOutput, error) {
		forecast, err := s.weather.ForecastByCity(ctx, args.City, domain.ForecastOptions{
			Days:                 args.Days,
			IncludeHumidity:      args.IncludeHumidity,
			IncludePrecipitation: args.IncludePrecipitation,
			IncludeWindSpeed:     args.IncludeWindSpeed,
		})
		if err != nil {
			return nil, weatherOutput{}, err
		}

		output := weatherOutput{
			City:        forecast.City,
			DisplayName: forecast.DisplayName,
			Summary:     forecast.Summary,
			GeneratedAt: forecast.GeneratedAt,
		}

		text := fmt.Sprintf("Weather for %s: %s. Current %.1f C, avg %.1f C, min %.1f C, max %.1f C.",
			forecast.DisplayName, forecast.Summary.Description,
			forecast.Summary.CurrentTemp, forecast.Summary.AvgTemp,
			forecast.Summary.MinTemp, forecast.Summary.MaxTemp)

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, output, nil
	})
}

// formatComparisonText renders a readable report for clients that only
// surface the text content block.
func formatComparisonText(result *domain.ShoppingResult, stores []domain.StoreSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Price comparison for %d item(s) in %s\n", result.TotalItems, result.Location)

	for _, item := range result.Results {
		fmt.Fprintf(&b, "\n%s:\n", item.SearchQuery)
		if item.Error != "" {
			fmt.Fprintf(&b, "  %s\n", item.Error)
		}
		for _, group := range item.Matches {
			for _, rec := range group {
				store := rec.Store
				if store == "" {
					store = rec.Platform
				}
				switch {
				case rec.NotFound:
					fmt.Fprintf(&b, "  %-18s not found\n", store)
				case !rec.InStock:
					fmt.Fprintf(&b, "  %-18s out of stock\n", store)
				default:
					fmt.Fprintf(&b, "  %-18s Rs %.2f  %s\n", store, rec.Price, rec.Name)
				}
			}
		}
	}

	if len(stores) > 0 {
		b.WriteString("\nStore summary (best value first):\n")
		for _, s := range stores {
			fmt.Fprintf(&b, "  %-18s %d/%d items, cart Rs %.2f\n",
				s.Store, s.ItemsAvailable, s.TotalItems, s.TotalCartPrice)
		}
	}

	return b.String()
}
