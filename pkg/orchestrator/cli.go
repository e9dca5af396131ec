package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kr/pretty"
	"github.com/travigo/journeyresolver/pkg/config"
	"github.com/travigo/journeyresolver/pkg/ctdf"
	"github.com/travigo/journeyresolver/pkg/dataaggregator/source/coordinates"
	"github.com/travigo/journeyresolver/pkg/database"
	"github.com/travigo/journeyresolver/pkg/elastic_client"
	"github.com/travigo/journeyresolver/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

// ConnectBackends connects the optional stores used for caching and stop metadata
func ConnectBackends() error {
	if err := redis_client.Connect(false); err != nil {
		return err
	}
	if err := elastic_client.Connect(false); err != nil {
		return err
	}
	if err := database.Connect(false); err != nil {
		return err
	}

	return nil
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve a journey question or a from/to pair into live itineraries",
		ArgsUsage: "[question]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "from",
				Usage: "origin place name or coordinates, defaults to the current location",
			},
			&cli.StringFlag{
				Name:  "to",
				Usage: "destination place name or coordinates",
			},
			&cli.StringSliceFlag{
				Name:  "via",
				Usage: "waypoint to travel through, only the first is used",
			},
			&cli.StringSliceFlag{
				Name:  "mode",
				Usage: "only use this transport mode",
			},
			&cli.StringFlag{
				Name:  "depart",
				Usage: "departure time as RFC3339, HH:MM or an ISO8601 duration from now",
			},
			&cli.StringFlag{
				Name:  "arrive",
				Usage: "arrival time as RFC3339, HH:MM or an ISO8601 duration from now",
			},
			&cli.StringFlag{
				Name:  "current-location",
				Usage: "current position as lat,lon",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "print the result as a Go value instead of JSON",
			},
		},
		Action: func(c *cli.Context) error {
			request := ctdf.ResolveRequest{
				NaturalLanguageQuery: strings.Join(c.Args().Slice(), " "),
				From:                 c.String("from"),
				To:                   c.String("to"),
				Via:                  c.StringSlice("via"),
				DepartureTime:        c.String("depart"),
				ArrivalTime:          c.String("arrive"),
			}

			if modeList := c.StringSlice("mode"); len(modeList) > 0 {
				request.Preferences = &ctdf.RequestPreferences{Modes: modeList}
			}

			if currentLocation := c.String("current-location"); currentLocation != "" {
				position, ok := coordinates.ParseLatLon(currentLocation)
				if !ok {
					return fmt.Errorf("current location %q is not a lat,lon pair", currentLocation)
				}
				request.CurrentLocation = &position
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if err := ConnectBackends(); err != nil {
				return err
			}

			orchestrator, err := Setup(cfg)
			if err != nil {
				return err
			}

			result := orchestrator.Resolve(context.Background(), request)

			if c.Bool("pretty") {
				pretty.Println(result)
			} else {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(result); err != nil {
					return err
				}
			}

			if result.Status == ctdf.ResultStatusError {
				return cli.Exit(result.Error, 1)
			}

			return nil
		},
	}
}
