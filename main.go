package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/radovskyb/watcher"
)

var siteConfPath = flag.String("siteConfPath", "site.json", "Path to the site configuration file")
var serve = flag.Bool("serve", false, "Start a localhost:9999 server for the site")
var watch = flag.Bool("watch", false, "Keep running and re-render the site on changes to the input directory.")
var drafts = flag.Bool("drafts", false, "Include posts with the 'draft' flag.")

func main() {
	flag.Parse()

	conf, err := readConf(*siteConfPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := renderSite(conf, *drafts); err != nil {
		log.Fatal(err)
	}

	if *watch && *serve {
		// Run watcher in background while serving
		go rerenderOnChange(conf, *drafts)
	}

	if *serve {
		serveSite(conf.OutDir)
	} else if *watch {
		rerenderOnChange(conf, *drafts)
	}
}

func renderSite(conf *SiteConf, drafts bool) error {
	site, err := ReadSite(conf, drafts)
	if err != nil {
		return err
	}

	log.Println("Writing site to " + conf.OutDir)
	if err = site.RenderAll(); err != nil {
		return err
	}
	return site.CopyStaticFiles()
}

func serveSite(dir string) {
	port := ":9999"

	http.Handle("/", http.FileServer(http.Dir(dir)))
	log.Printf("Serving %v on %v.", dir, port)
	log.Fatal(http.ListenAndServe(port, nil))
}

func rerenderOnChange(conf *SiteConf, drafts bool) {
	log.Println("Watching " + conf.WritingDir + " for changes...")

	w := watcher.New()
	w.SetMaxEvents(1)

	go func() {
		for {
			select {
			case <-w.Event:
				// A broken post shouldn't end the session; fix it and save again.
				if err := renderSite(conf, drafts); err != nil {
					log.Println(err)
				}
			case err := <-w.Error:
				log.Println(err)
			case <-w.Closed:
				return
			}
		}
	}()

	if err := w.AddRecursive(conf.WritingDir); err != nil {
		log.Fatalln(err)
	}

	if err := w.Start(time.Millisecond * 200); err != nil {
		log.Fatalln(err)
	}
}
