package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kennelops/kennelplan/core/model"
	"github.com/kennelops/kennelplan/infra/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo kennel (profiles, pairs and conflicts) into the store",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

var seedProfiles = []model.DogProfile{
	{Name: "Irbis", AgeYears: 2, CanLead: true, CanTeam: true},
	{Name: "Taiga", AgeYears: 2, CanLead: true, CanTeam: true},
	{Name: "Rikki", AgeYears: 7, CanTeam: true},
	{Name: "Joha", AgeYears: 7, CanTeam: true},
	{Name: "Lennon", AgeYears: 7, CanTeam: true, CanWheel: true},
	{Name: "Blix", AgeYears: 7, CanTeam: true, CanWheel: true},
	{Name: "Talvi", AgeYears: 10, CanTeam: true},
	{Name: "Lumi", AgeYears: 10, CanTeam: true},
	{Name: "Tesla", AgeYears: 3, CanLead: true, CanTeam: true, CanWheel: true},
	{Name: "Lara", AgeYears: 3, CanLead: true, CanTeam: true, CanWheel: true},
	{Name: "Jukki", AgeYears: 11, CanTeam: true},
	{Name: "Vita", AgeYears: 11, CanTeam: true},
	{Name: "Efir", AgeYears: 8, CanWheel: true},
	{Name: "Sparki", AgeYears: 8, CanWheel: true},
	{Name: "Vesta", AgeYears: 7, CanLead: true},
	{Name: "Lisa", AgeYears: 7, CanLead: true},
	{Name: "Prince", AgeYears: 6, CanTeam: true, CanWheel: true},
	{Name: "Rover", AgeYears: 6, CanTeam: true, CanWheel: true},
	{Name: "Landa", AgeYears: 6, CanLead: true},
	{Name: "Koni", AgeYears: 6, CanLead: true},
	{Name: "Monti", AgeYears: 6, CanLead: true, CanTeam: true, CanWheel: true},
	{Name: "Python", AgeYears: 6, CanLead: true, CanTeam: true, CanWheel: true},
	{Name: "Misha", AgeYears: 3, CanWheel: true},
	{Name: "Graph", AgeYears: 3, CanWheel: true},
	{Name: "Ilon", AgeYears: 3, CanTeam: true, CanWheel: true},
	{Name: "Knox", AgeYears: 3, CanTeam: true, CanWheel: true},
	{Name: "Kurt", AgeYears: 9, CanTeam: true},
	{Name: "Marfa", AgeYears: 9, CanTeam: true},
	{Name: "Whisky", AgeYears: 7, CanTeam: true, CanWheel: true},
	{Name: "Ray", AgeYears: 7, CanTeam: true, CanWheel: true},
}

var seedPairs = [][2]string{
	{"Irbis", "Taiga"},
	{"Rikki", "Joha"},
	{"Lennon", "Blix"},
	{"Talvi", "Lumi"},
	{"Tesla", "Lara"},
	{"Jukki", "Vita"},
	{"Efir", "Sparki"},
	{"Vesta", "Lisa"},
	{"Prince", "Rover"},
	{"Landa", "Koni"},
	{"Monti", "Python"},
	{"Misha", "Graph"},
	{"Ilon", "Knox"},
	{"Kurt", "Marfa"},
	{"Whisky", "Ray"},
}

var seedConflicts = [][2]string{
	{"Vesta", "Jukki"},
	{"Vesta", "Vita"},
	{"Lisa", "Jukki"},
	{"Lisa", "Vita"},
	{"Misha", "Prince"},
	{"Misha", "Rover"},
	{"Rikki", "Marfa"},
	{"Koni", "Vesta"},
	{"Koni", "Lisa"},
	{"Landa", "Vesta"},
	{"Landa", "Lisa"},
}

func runSeed(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	store := svc.Store()
	for _, p := range seedProfiles {
		if err := store.SetProfile(p); err != nil {
			return err
		}
	}
	for _, pair := range seedPairs {
		rel := model.Relation{A: pair[0], B: pair[1], Kind: model.RelationPair}
		if err := store.AddRelation(rel); err != nil {
			return err
		}
	}
	for _, c := range seedConflicts {
		rel := model.Relation{A: c[0], B: c[1], Kind: model.RelationConflict}
		if err := store.AddRelation(rel); err != nil {
			return err
		}
	}
	logger.New("cli").Infof("seeded %d profiles, %d pairs, %d conflicts",
		len(seedProfiles), len(seedPairs), len(seedConflicts))
	return nil
}
