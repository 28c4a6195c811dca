package pipeline

import "github.com/nao1215/factcheck/internal/model"

const unemployment = "national unemployment rate in percent"

func govReference() model.Information {
	return model.Information{
		WebsiteName:   "U.S. Bureau of Labor Statistics",
		IsTrusted:     true,
		WebsiteTopics: []string{"economy", "employment"},
		Statistics: []model.Statistic{{
			Description: unemployment,
			Value:       4,
			Sources:     []model.Source{{Location: "https://www.bls.gov/cps/", Trusted: true}},
		}},
	}
}

func falseWebsite() model.Information {
	return model.Information{
		WebsiteName:   "totally-real-news.example",
		WebsiteTopics: []string{"economy", "politics"},
		Statistics: []model.Statistic{{
			Description: "unemployment is at a record high of",
			Value:       27,
			Sources:     []model.Source{{Location: "https://totally-real-news.example/blog", Trusted: false}},
		}},
	}
}

func facebookPost() model.Information {
	return model.Information{
		WebsiteName:   "Facebook post",
		WebsiteTopics: []string{"employment", "social media"},
		Statistics: []model.Statistic{{
			Description: unemployment,
			Value:       4,
			Sources:     []model.Source{{Location: "https://www.bls.gov/cps/", Trusted: true}},
		}},
	}
}

func offTopicPost() model.Information {
	return model.Information{
		WebsiteName:   "recipe blog",
		WebsiteTopics: []string{"cooking"},
		Statistics: []model.Statistic{{
			Description: "minutes to bake",
			Value:       45,
		}},
	}
}
