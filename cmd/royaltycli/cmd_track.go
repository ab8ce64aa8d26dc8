package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/x/track"
)

func cmdInitTrack(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that registers a new track. The signer of this
transaction becomes the track authority.
`)
		fl.PrintDefaults()
	}
	var (
		musicIDFl = fl.String("music-id", "", "Identifier of the track.")
	)
	fl.Parse(args)

	msg := track.InitializeMsg{
		Metadata: newMetadata(),
		MusicID:  *musicIDFl,
	}
	return writeMsg(output, &msg)
}

func cmdAddContribution(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that adds a contributor to a track. Contributors are
paid in the order they were added. A track holds at most two contributors and
the total weight cannot exceed 100.
`)
		fl.PrintDefaults()
	}
	var (
		musicIDFl     = fl.String("music-id", "", "Identifier of the track.")
		contributorFl = flAddress(fl, "contributor", "", "Address of the contributor.")
		kindFl        = fl.String("kind", "", "Kind of the contribution, for example Human or AI.")
		weightFl      = fl.Uint("weight", 0, "Weight of the contribution, between 1 and 100.")
	)
	fl.Parse(args)

	if *weightFl > math.MaxUint32 {
		flagDie("weight %d does not fit in 32 bits", *weightFl)
	}
	msg := track.AddContributionMsg{
		Metadata:    newMetadata(),
		MusicID:     *musicIDFl,
		Contributor: *contributorFl,
		Kind:        *kindFl,
		Weight:      uint32(*weightFl),
	}
	return writeMsg(output, &msg)
}

func cmdDistribute(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction that splits an amount between the contributors of a
track. Payees must be given in the order of the contributors, one -payee flag
per contributor. The transaction must be signed by the track authority.
`)
		fl.PrintDefaults()
	}
	var (
		musicIDFl = fl.String("music-id", "", "Identifier of the track.")
		amountFl  = fl.Uint64("amount", 0, "Amount to distribute.")
		srcFl     = flAddress(fl, "src", "", "Wallet that the amount is taken from.")
		payeesFl  = flAddresses(fl, "payee", "Wallet of a contributor. Repeat for every contributor.")
	)
	fl.Parse(args)

	msg := track.DistributeMsg{
		Metadata: newMetadata(),
		MusicID:  *musicIDFl,
		Amount:   *amountFl,
		Source:   *srcFl,
		Payees:   []royalty.Address(*payeesFl),
	}
	return writeMsg(output, &msg)
}

func cmdViewTrack(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the track stored in the local state.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(),
			"Directory of the local state. You can use ROYALTY_HOME environment variable to set it.")
		musicIDFl = fl.String("music-id", "", "Identifier of the track.")
	)
	fl.Parse(args)

	t, err := loadTrack(*homeFl, *musicIDFl)
	if err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(t, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}

func cmdPreviewDistribution(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out how an amount would be split between the contributors of a track.
No transaction is created and the state is not modified.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(),
			"Directory of the local state. You can use ROYALTY_HOME environment variable to set it.")
		musicIDFl = fl.String("music-id", "", "Identifier of the track.")
		amountFl  = fl.Uint64("amount", 0, "Amount to split.")
	)
	fl.Parse(args)

	t, err := loadTrack(*homeFl, *musicIDFl)
	if err != nil {
		return err
	}
	shares, err := track.Split(t.Weights(), *amountFl)
	if err != nil {
		return fmt.Errorf("cannot split: %s", err)
	}
	for i, c := range t.Contributors {
		fmt.Fprintf(output, "%s\t%s\t%d\t%d\n", c.Identity, c.Kind, c.Weight, shares[i])
	}
	return nil
}

// loadTrack reads the track from the committed local state.
func loadTrack(home, musicID string) (*track.Track, error) {
	if musicID == "" {
		return nil, fmt.Errorf("music ID is required")
	}
	a, err := openApp(home, "none", false)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	var t track.Track
	switch ok, err := queryOne(a, "/tracks", []byte(musicID), &t); {
	case err != nil:
		return nil, err
	case !ok:
		return nil, fmt.Errorf("track %q not found", musicID)
	}
	return &t, nil
}
