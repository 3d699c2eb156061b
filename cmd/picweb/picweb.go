// Command picweb serves the sheets of a Tibia.pic file over HTTP.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/go-tibia-pic/paths"
	"badc0de.net/pkg/go-tibia-pic/pic"
	"badc0de.net/pkg/go-tibia-pic/web"
)

var (
	listenAddress  = flag.String("listen_address", ":8080", "http listen address for picweb")
	debugWebServer = flag.String("debug_web_server_listen_address", "", "where the debug server (/debug/requests, /debug/events) will listen")
	allowShort     = flag.Bool("allow_short_tiles", false, "accept tiles whose runs cover fewer than 32x32 pixels, leaving the rest transparent; by default such tiles are malformed")

	tibiaPicPath string
)

func main() {
	paths.SetupFilePathFlag("Tibia.pic", "tibia_pic_path", &tibiaPicPath)
	flagutil.Parse()

	if _, err := os.Stat(tibiaPicPath); err != nil {
		glog.Exitf("cannot use %q: %v", tibiaPicPath, err)
	}

	h := web.NewHandler(tibiaPicPath, &pic.Options{AllowShortTiles: *allowShort})
	r := mux.NewRouter()
	h.RegisterRoutes(r)

	if *debugWebServer != "" {
		go func() {
			glog.Errorf("debug server: %v", http.ListenAndServe(*debugWebServer, nil))
		}()
	}

	glog.Infof("serving %s on %s", tibiaPicPath, *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, handlers.LoggingHandler(os.Stderr, handlers.CompressHandler(traced(r)))))
}

// traced records every request in the x/net/trace request log served by the
// debug server.
func traced(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tr := trace.New("picweb", r.URL.Path)
		defer tr.Finish()
		tr.LazyPrintf("%s %s from %s", r.Method, r.URL, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
