package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/leandrodaf/ump/internal/logger"
	"github.com/leandrodaf/ump/sdk/contracts"
	"github.com/leandrodaf/ump/sdk/midi"
	"github.com/leandrodaf/ump/sdk/translate"
	"github.com/leandrodaf/ump/sdk/ump"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	capturePath := flag.String("capture", "", "write captured packets to this file")
	midi2 := flag.Bool("midi2", false, "up-scale channel voice messages to MIDI 2.0")
	flag.Parse()

	log := logger.NewZapLogger()

	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{
			Types: []ump.MessageType{ump.TypeMIDI1ChannelVoice, ump.TypeMIDI2ChannelVoice, ump.TypeData64},
		}),
	}
	if *capturePath != "" {
		opts = append(opts, contracts.WithCaptureFile(*capturePath))
	}
	if *midi2 {
		opts = append(opts, contracts.WithProtocol(ump.ProtocolMIDI2))
	}

	var (
		client contracts.ClientMIDI
		err    error
	)
	if *configPath != "" {
		client, err = midi.NewMIDIClientFromConfig(*configPath, opts...)
	} else {
		client, err = midi.NewMIDIClient(opts...)
	}
	if err != nil {
		log.Error("Failed to initialize MIDI client", log.Field().Error("error", err))
		return
	}
	defer client.Stop()

	devices, err := client.ListDevices()
	if err != nil || len(devices) == 0 {
		log.Error("No MIDI devices found or error listing devices", log.Field().Error("error", err))
		return
	}
	fmt.Println("Available MIDI devices:", devices)

	if err = client.SelectDevice(0); err != nil {
		log.Error("Failed to select MIDI device", log.Field().Error("error", err))
		return
	}

	eventChannel := make(chan contracts.Event, 100)
	go func() {
		for event := range eventChannel {
			fields := []contracts.Field{
				log.Field().Uint64("timestamp", event.Timestamp),
				log.Field().String("source", event.Source),
				log.Field().String("type", event.Packet.MessageType().String()),
				log.Field().String("packet", event.Packet.String()),
			}
			// Show the MIDI 1.0 equivalent of MIDI 2.0 voice messages.
			if down, err := translate.DownScale(event.Message); err == nil {
				fields = append(fields, log.Field().String("midi1", ump.Encode(down).String()))
			}
			log.Info("UMP Event", fields...)
		}
	}()

	client.StartCapture(eventChannel)

	fmt.Println("Capturing MIDI events... Press Ctrl+C to exit.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
}
