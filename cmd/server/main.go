package main

import (
	"os"

	"github.com/gin-contrib/cors"

	"github.com/driftline/driftline/alerter"
	"github.com/driftline/driftline/classifier"
	"github.com/driftline/driftline/detector"
	"github.com/driftline/driftline/engagement"
	"github.com/driftline/driftline/pipeline"
	"github.com/driftline/driftline/server"
	"github.com/driftline/driftline/storage"
	"github.com/driftline/driftline/utils/dotenv"
	Flag "github.com/driftline/driftline/utils/flag"
	Logger "github.com/driftline/driftline/utils/log"
)

func main() {
	Flag.Parse()
	Logger.InitLogger()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	// Components are constructed once here and passed into handlers;
	// nothing below holds package-level state.
	analysisPipeline := &pipeline.Pipeline{
		Classifier: classifier.New(classifier.DefaultLexicon()),
		Scorer:     engagement.NewScorer(engagement.DefaultViralThreshold),
		Detector:   detector.New(detector.DefaultConfig(), detector.NewGonumGraphAnalyzer()),
		Alerter:    alerter.NewGenerator(alerter.DefaultAlertThreshold),
	}

	handler := &server.Handler{Pipeline: analysisPipeline}

	// Persistence is optional: the analysis API works without a
	// database, it just won't keep history.
	if os.Getenv("DB_HOST") != "" {
		db, err := storage.GetDBConnection()
		if err != nil {
			Logger.Log.Warnln("starting without persistence:", err)
		} else if store, err := storage.NewStore(db); err != nil {
			Logger.Log.Warnln("starting without persistence:", err)
		} else {
			handler.Store = store
		}
	}

	router := server.NewRouter(handler)
	router.Use(cors.Default())

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	Logger.Log.Infoln("api server starts up on", addr)
	router.Run(addr)
}
