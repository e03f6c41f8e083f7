// jjyframe prints the 60-symbol timecode frame for a given civil time.
// Useful for eyeballing what the transmitter will emit without hardware.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/mkondo/jjyctl/internal/timecode"
)

func main() {
	at := flag.String("time", "", "civil time to encode (RFC3339); defaults to now")
	offsetHours := flag.Int("offset", 9, "UTC offset in hours applied when -time is omitted")
	flag.Parse()

	var civil time.Time
	if *at != "" {
		parsed, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			log.Fatalf("parse -time: %v", err)
		}
		civil = parsed
	} else {
		civil = time.Now().UTC().Add(time.Duration(*offsetHours) * time.Hour)
	}

	ct := timecode.FromTime(civil)
	frame, err := timecode.Encode(ct)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("time:    %s\n", ct)
	fmt.Printf("variant: %s\n", timecode.VariantFor(ct.Minute))
	fmt.Printf("frame:   %s\n", frame)
	for i, sym := range frame {
		fmt.Printf("%02d %s %v\n", i, sym, sym.PulseWidth())
	}
}
