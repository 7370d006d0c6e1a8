package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	zl "github.com/rs/zerolog"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"recognition.dev/cheers/capture"
	"recognition.dev/cheers/config"
	"recognition.dev/cheers/form"
	"recognition.dev/cheers/serve"
	"recognition.dev/cheers/upload"
	"recognition.dev/cheers/util/log"
	"recognition.dev/cheers/util/loghttp"
	"recognition.dev/cheers/util/version"
	"recognition.dev/cheers/view"
)

func main() {
	impl(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Exit)
}

func impl(args []string, in io.Reader, out, errs io.Writer, exit func(int)) {
	log.UseConsole(errs)
	l := log.Default()

	// Variables from .env are visible to the Envar bindings below.
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(errs, err.Error())
		exit(1)
		return
	}

	app := kingpin.New("cheers", "Serves the recognition card form and uploads submitted cards.")
	app.ErrorWriter(errs)
	app.UsageWriter(errs)
	app.Terminate(exit)

	v := app.Flag("version", "Prints the version of cheers.").Short('v').Bool()
	lv := app.Flag("log-level", "Verbosity of logging to print").Default("info").Enum("error", "info", "debug")
	cf := app.Flag("config", "Path to a YAML config file.").Envar("CHEERS_CONFIG").PlaceHolder("/path/to/cheers.yaml").String()

	app.PreAction(func(pc *kingpin.ParseContext) error {
		if *v {
			fmt.Fprintln(out, version.Version())
			exit(0)
		}
		return log.SetGlobalLevelFromString(*lv)
	})

	serveCmd(app, cf, l)
	renderCmd(app, cf, out, l)

	if len(args) == 0 {
		app.Usage(args)
		return
	}

	_, err := app.Parse(args)
	if err != nil {
		fmt.Fprintln(errs, err.Error())
		exit(1)
	}
}

// overrides are the settings that can come from flags or the environment.
// Zero values leave the config file's setting alone.
type overrides struct {
	port         *int
	uploadOrigin *string
	location     *string
	title        *string
	assets       *string
	backgrounds  *[]string
	viewTTL      *time.Duration
}

func (o overrides) apply(c config.Config) config.Config {
	if o.port != nil && *o.port != 0 {
		c.Port = *o.port
	}
	if o.uploadOrigin != nil && *o.uploadOrigin != "" {
		c.UploadOrigin = *o.uploadOrigin
	}
	if o.location != nil && *o.location != "" {
		c.Location = *o.location
	}
	if o.title != nil && *o.title != "" {
		c.Title = *o.title
	}
	if o.assets != nil && *o.assets != "" {
		c.AssetsDir = *o.assets
	}
	if o.backgrounds != nil && len(*o.backgrounds) > 0 {
		c.Backgrounds = *o.backgrounds
	}
	if o.viewTTL != nil && *o.viewTTL != 0 {
		c.ViewTTL = *o.viewTTL
	}
	return c
}

func loadConfig(path string, o overrides) (config.Config, error) {
	c, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	c = o.apply(c)
	return c, c.Validate()
}

func serveCmd(parent *kingpin.Application, cf *string, l zl.Logger) {
	kc := parent.Command("serve", "Starts the recognition form service.")
	o := overrides{
		port:         kc.Flag("port", "The port to run on (default 7002).").Envar("CHEERS_PORT").Int(),
		uploadOrigin: kc.Flag("upload-origin", "Scheme and host of the upload endpoint; cards are posted to its /api/upload.").Envar("CHEERS_UPLOAD_ORIGIN").String(),
		location:     kc.Flag("location", "Location sent with every upload.").Envar("CHEERS_LOCATION").String(),
		title:        kc.Flag("title", "Title printed in the card header.").Envar("CHEERS_TITLE").String(),
		assets:       kc.Flag("assets", "Directory holding the background images, served at /static/.").Envar("CHEERS_ASSETS").PlaceHolder("/path/to/public").String(),
		backgrounds:  kc.Flag("background", "A background image reference; repeat for several.").Strings(),
		viewTTL:      kc.Flag("view-ttl", "How long an untouched form is kept in memory.").Envar("CHEERS_VIEW_TTL").Duration(),
	}
	kc.Action(func(_ *kingpin.ParseContext) error {
		c, err := loadConfig(*cf, o)
		if err != nil {
			return err
		}
		svc, err := newService(c, l)
		if err != nil {
			return err
		}

		l.Info().Msgf("Listening on %d...", c.Port)
		server := &http.Server{
			Addr:        fmt.Sprintf(":%d", c.Port),
			Handler:     svc.Handler(),
			ReadTimeout: 10 * time.Second,
		}
		return server.ListenAndServe()
	})
}

func newService(c config.Config, l zl.Logger) (*serve.Service, error) {
	httpClient := &http.Client{Transport: loghttp.Wrap(nil, l, loghttp.UploadFilter())}
	uploader, err := upload.NewClient(c.UploadOrigin, httpClient, l)
	if err != nil {
		return nil, err
	}
	tmpl, err := serve.ParseTemplates(serve.Templates())
	if err != nil {
		return nil, err
	}
	deps := view.Deps{
		Title:      c.Title,
		Location:   c.Location,
		Picker:     view.NewPicker(c.Backgrounds, nil),
		Rasterizer: capture.NewRenderer(capture.Assets{Dir: c.AssetsDir, Client: httpClient}, l),
		Uploader:   uploader,
		Logger:     l,
	}
	return serve.NewService(l, tmpl, deps, c.AssetsDir, c.ViewTTL), nil
}

func renderCmd(parent *kingpin.Application, cf *string, out io.Writer, l zl.Logger) {
	kc := parent.Command("render", "Draws a card to a JPEG file without uploading it.")
	recipient := kc.Flag("recipient", "Recipient name.").String()
	message := kc.Flag("message", "Recognition message.").String()
	signature := kc.Flag("signature", "Signature.").String()
	date := kc.Flag("date", "Date, as YYYY-MM-DD.").String()
	checks := kc.Flag("check", "A checkbox to tick, eg growSales; repeat for several.").Strings()
	background := kc.Flag("background", "Background image reference; a random configured one if empty.").String()
	scale := kc.Flag("scale", "Device pixel ratio.").Default("2").Float64()
	quality := kc.Flag("quality", "JPEG quality between 0 and 1.").Default("0.95").Float64()
	dataURI := kc.Flag("data-uri", "Write the card as a data URI instead of JPEG bytes.").Bool()
	dest := kc.Flag("out", "File to write; - for stdout.").Short('o').Default("-").String()

	kc.Action(func(_ *kingpin.ParseContext) error {
		c, err := config.Load(*cf)
		if err != nil {
			return err
		}
		s := form.State{}.
			WithRecipientName(*recipient).
			WithMessage(*message).
			WithSignature(*signature).
			WithDate(*date)
		for _, name := range *checks {
			k, err := form.ParseKey(name)
			if err != nil {
				return err
			}
			if s, err = s.WithCheckbox(k, true); err != nil {
				return err
			}
		}
		bg := *background
		if bg == "" {
			bg = view.NewPicker(c.Backgrounds, nil).Pick()
		}

		o := capture.DefaultOptions
		o.Scale = *scale
		r := capture.NewRenderer(capture.Assets{Dir: c.AssetsDir, Client: http.DefaultClient}, l)
		img, err := r.Rasterize(context.Background(), capture.Card{Title: c.Title, Background: bg, State: s}, o)
		if err != nil {
			return err
		}

		var b []byte
		if *dataURI {
			uri, err := capture.EncodeDataURI(img, *quality)
			if err != nil {
				return err
			}
			b = []byte(uri + "\n")
		} else if b, err = capture.EncodeJPEG(img, *quality); err != nil {
			return err
		}

		if *dest == "-" {
			_, err = out.Write(b)
			return err
		}
		if err := os.WriteFile(*dest, b, 0644); err != nil {
			return err
		}
		l.Info().Str("file", *dest).Int("bytes", len(b)).Msg("Wrote card")
		return nil
	})
}
