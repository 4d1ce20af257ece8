package repository

import "github.com/okian/revintel/internal/domain/model"

// SeedAccounts returns the demo CRM accounts.
func SeedAccounts() []model.Account {
	return []model.Account{
		{
			ID: "acc_001", Company: "Acme Corp", Plan: model.PlanEnterprise, MRR: 5000,
			CreatedDate: "2024-01-15", Industry: "technology", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 45, FeaturesAdopted: 8, APICallsPerDay: 1200,
				SupportTickets30d: 2, NPSScore: intp(9), LoginFrequency7d: 28,
				UsageDeclinePct: 0, DaysSinceLastLogin: 0, MRRChangePct: 8,
				SeatChangePct: 5, SupportContactDaysAgo: intp(12), TrialDay: 0,
			},
		},
		{
			ID: "acc_002", Company: "TechStart Inc", Plan: model.PlanTrial, MRR: 0,
			CreatedDate: "2024-10-20", Industry: "saas", Status: model.StatusTrial,
			Usage: model.UsageSignals{
				DailyActiveUsers: 8, FeaturesAdopted: 3, APICallsPerDay: 150,
				SupportTickets30d: 0, NPSScore: nil, LoginFrequency7d: 12,
				UsageDeclinePct: 0, DaysSinceLastLogin: 1, MRRChangePct: 0,
				SeatChangePct: 25, SupportContactDaysAgo: intp(3), TrialDay: 10,
			},
		},
		{
			ID: "acc_003", Company: "Global Finance Ltd", Plan: model.PlanProfessional, MRR: 1200,
			CreatedDate: "2023-08-10", Industry: "finance", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 22, FeaturesAdopted: 6, APICallsPerDay: 600,
				SupportTickets30d: 1, NPSScore: intp(8), LoginFrequency7d: 20,
				UsageDeclinePct: 5, DaysSinceLastLogin: 1, MRRChangePct: 0,
				SeatChangePct: 0, SupportContactDaysAgo: intp(20), TrialDay: 0,
			},
		},
		{
			ID: "acc_004", Company: "RetailMax Systems", Plan: model.PlanStarter, MRR: 299,
			CreatedDate: "2024-06-01", Industry: "retail", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 5, FeaturesAdopted: 2, APICallsPerDay: 80,
				SupportTickets30d: 3, NPSScore: intp(6), LoginFrequency7d: 8,
				UsageDeclinePct: 25, DaysSinceLastLogin: 4, MRRChangePct: 0,
				SeatChangePct: -10, SupportContactDaysAgo: intp(6), TrialDay: 0,
			},
		},
		{
			ID: "acc_005", Company: "HealthTech Solutions", Plan: model.PlanEnterprise, MRR: 8500,
			CreatedDate: "2023-03-20", Industry: "healthcare", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 120, FeaturesAdopted: 10, APICallsPerDay: 2500,
				SupportTickets30d: 4, NPSScore: intp(9), LoginFrequency7d: 35,
				UsageDeclinePct: 0, DaysSinceLastLogin: 0, MRRChangePct: 12,
				SeatChangePct: 10, SupportContactDaysAgo: intp(2), TrialDay: 0,
			},
		},
		{
			ID: "acc_006", Company: "EduLearn Platform", Plan: model.PlanProfessional, MRR: 950,
			CreatedDate: "2024-02-14", Industry: "education", Status: model.StatusAtRisk,
			Usage: model.UsageSignals{
				DailyActiveUsers: 12, FeaturesAdopted: 4, APICallsPerDay: 200,
				SupportTickets30d: 8, NPSScore: intp(4), LoginFrequency7d: 5,
				UsageDeclinePct: 55, DaysSinceLastLogin: 18, MRRChangePct: -15,
				SeatChangePct: -30, SupportContactDaysAgo: intp(4), TrialDay: 0,
			},
		},
		{
			ID: "acc_007", Company: "Manufacturing Pro", Plan: model.PlanEnterprise, MRR: 6200,
			CreatedDate: "2023-11-05", Industry: "manufacturing", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 65, FeaturesAdopted: 9, APICallsPerDay: 1800,
				SupportTickets30d: 2, NPSScore: intp(8), LoginFrequency7d: 30,
				UsageDeclinePct: 0, DaysSinceLastLogin: 0, MRRChangePct: 5,
				SeatChangePct: 4, SupportContactDaysAgo: intp(15), TrialDay: 0,
			},
		},
		{
			ID: "acc_008", Company: "SmallBiz Tools", Plan: model.PlanStarter, MRR: 199,
			CreatedDate: "2024-09-10", Industry: "consulting", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 3, FeaturesAdopted: 2, APICallsPerDay: 45,
				SupportTickets30d: 1, NPSScore: intp(7), LoginFrequency7d: 10,
				UsageDeclinePct: 15, DaysSinceLastLogin: 3, MRRChangePct: 0,
				SeatChangePct: 0, SupportContactDaysAgo: intp(25), TrialDay: 0,
			},
		},
		{
			ID: "acc_009", Company: "CloudScale Ventures", Plan: model.PlanTrial, MRR: 0,
			CreatedDate: "2024-10-28", Industry: "technology", Status: model.StatusTrial,
			Usage: model.UsageSignals{
				DailyActiveUsers: 15, FeaturesAdopted: 5, APICallsPerDay: 350,
				SupportTickets30d: 0, NPSScore: nil, LoginFrequency7d: 18,
				UsageDeclinePct: 0, DaysSinceLastLogin: 0, MRRChangePct: 0,
				SeatChangePct: 40, SupportContactDaysAgo: intp(3), TrialDay: 8,
			},
		},
		{
			ID: "acc_010", Company: "Legal Partners LLP", Plan: model.PlanProfessional, MRR: 1500,
			CreatedDate: "2024-04-22", Industry: "legal", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 18, FeaturesAdopted: 5, APICallsPerDay: 400,
				SupportTickets30d: 2, NPSScore: intp(8), LoginFrequency7d: 22,
				UsageDeclinePct: 8, DaysSinceLastLogin: 1, MRRChangePct: 0,
				SeatChangePct: 2, SupportContactDaysAgo: intp(10), TrialDay: 0,
			},
		},
		{
			ID: "acc_011", Company: "Marketing Wizards", Plan: model.PlanProfessional, MRR: 899,
			CreatedDate: "2023-12-01", Industry: "marketing", Status: model.StatusAtRisk,
			Usage: model.UsageSignals{
				DailyActiveUsers: 6, FeaturesAdopted: 3, APICallsPerDay: 120,
				SupportTickets30d: 5, NPSScore: intp(5), LoginFrequency7d: 4,
				UsageDeclinePct: 65, DaysSinceLastLogin: 24, MRRChangePct: -20,
				SeatChangePct: -40, SupportContactDaysAgo: intp(5), TrialDay: 0,
			},
		},
		{
			ID: "acc_012", Company: "DataDriven Analytics", Plan: model.PlanEnterprise, MRR: 12000,
			CreatedDate: "2023-05-15", Industry: "data_analytics", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 200, FeaturesAdopted: 12, APICallsPerDay: 5000,
				SupportTickets30d: 3, NPSScore: intp(10), LoginFrequency7d: 42,
				UsageDeclinePct: 0, DaysSinceLastLogin: 0, MRRChangePct: 15,
				SeatChangePct: 12, SupportContactDaysAgo: intp(7), TrialDay: 0,
			},
		},
		{
			ID: "acc_013", Company: "Logistics Express", Plan: model.PlanStarter, MRR: 249,
			CreatedDate: "2024-08-05", Industry: "logistics", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 7, FeaturesAdopted: 3, APICallsPerDay: 100,
				SupportTickets30d: 2, NPSScore: intp(7), LoginFrequency7d: 12,
				UsageDeclinePct: 12, DaysSinceLastLogin: 2, MRRChangePct: 0,
				SeatChangePct: 0, SupportContactDaysAgo: intp(14), TrialDay: 0,
			},
		},
		{
			ID: "acc_014", Company: "AgriTech Farms", Plan: model.PlanProfessional, MRR: 1100,
			CreatedDate: "2024-03-10", Industry: "agriculture", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 14, FeaturesAdopted: 5, APICallsPerDay: 280,
				SupportTickets30d: 1, NPSScore: intp(8), LoginFrequency7d: 18,
				UsageDeclinePct: 5, DaysSinceLastLogin: 1, MRRChangePct: 4,
				SeatChangePct: 3, SupportContactDaysAgo: intp(30), TrialDay: 0,
			},
		},
		{
			ID: "acc_015", Company: "PropTech Realty", Plan: model.PlanTrial, MRR: 0,
			CreatedDate: "2024-10-25", Industry: "real_estate", Status: model.StatusTrial,
			Usage: model.UsageSignals{
				DailyActiveUsers: 4, FeaturesAdopted: 2, APICallsPerDay: 60,
				SupportTickets30d: 1, NPSScore: nil, LoginFrequency7d: 8,
				UsageDeclinePct: 0, DaysSinceLastLogin: 6, MRRChangePct: 0,
				SeatChangePct: 0, SupportContactDaysAgo: nil, TrialDay: 12,
			},
		},
		{
			ID: "acc_016", Company: "InsureTech Global", Plan: model.PlanEnterprise, MRR: 7500,
			CreatedDate: "2023-07-20", Industry: "insurance", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 95, FeaturesAdopted: 11, APICallsPerDay: 2200,
				SupportTickets30d: 3, NPSScore: intp(9), LoginFrequency7d: 33,
				UsageDeclinePct: 0, DaysSinceLastLogin: 0, MRRChangePct: 6,
				SeatChangePct: 5, SupportContactDaysAgo: intp(9), TrialDay: 0,
			},
		},
		{
			ID: "acc_017", Company: "MediaStream Co", Plan: model.PlanProfessional, MRR: 1300,
			CreatedDate: "2024-01-08", Industry: "media", Status: model.StatusAtRisk,
			Usage: model.UsageSignals{
				DailyActiveUsers: 10, FeaturesAdopted: 4, APICallsPerDay: 180,
				SupportTickets30d: 7, NPSScore: intp(5), LoginFrequency7d: 6,
				UsageDeclinePct: 48, DaysSinceLastLogin: 15, MRRChangePct: -10,
				SeatChangePct: -25, SupportContactDaysAgo: intp(3), TrialDay: 0,
			},
		},
		{
			ID: "acc_018", Company: "EnergyGrid Solutions", Plan: model.PlanEnterprise, MRR: 9800,
			CreatedDate: "2023-09-12", Industry: "energy", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 140, FeaturesAdopted: 10, APICallsPerDay: 3500,
				SupportTickets30d: 2, NPSScore: intp(9), LoginFrequency7d: 38,
				UsageDeclinePct: 0, DaysSinceLastLogin: 0, MRRChangePct: 10,
				SeatChangePct: 8, SupportContactDaysAgo: intp(11), TrialDay: 0,
			},
		},
		{
			ID: "acc_019", Company: "FoodDelivery Hub", Plan: model.PlanStarter, MRR: 299,
			CreatedDate: "2024-07-15", Industry: "food_delivery", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 9, FeaturesAdopted: 3, APICallsPerDay: 200,
				SupportTickets30d: 1, NPSScore: intp(7), LoginFrequency7d: 14,
				UsageDeclinePct: 10, DaysSinceLastLogin: 2, MRRChangePct: 0,
				SeatChangePct: 5, SupportContactDaysAgo: intp(18), TrialDay: 0,
			},
		},
		{
			ID: "acc_020", Company: "TravelTech Bookings", Plan: model.PlanProfessional, MRR: 1750,
			CreatedDate: "2024-05-20", Industry: "travel", Status: model.StatusActive,
			Usage: model.UsageSignals{
				DailyActiveUsers: 28, FeaturesAdopted: 7, APICallsPerDay: 850,
				SupportTickets30d: 2, NPSScore: intp(8), LoginFrequency7d: 24,
				UsageDeclinePct: 3, DaysSinceLastLogin: 1, MRRChangePct: 6,
				SeatChangePct: 6, SupportContactDaysAgo: intp(21), TrialDay: 0,
			},
		},
	}
}

// SeedLeads returns the demo CRM leads.
func SeedLeads() []model.Lead {
	return []model.Lead{
		{
			ID: "lead_001", Company: "FutureTech Innovations", Industry: "technology", EmployeeCount: 250,
			ContactName: "Sarah Johnson", ContactTitle: "VP of Engineering",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 45, DemoRequested: true, WhitepaperDownloads: 3,
				EmailEngagementScore: 85, LinkedInEngagement: true, FreeTrialStarted: true,
			},
		},
		{
			ID: "lead_002", Company: "StartupHub", Industry: "saas", EmployeeCount: 15,
			ContactName: "Mike Chen", ContactTitle: "CEO",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 8, DemoRequested: false, WhitepaperDownloads: 1,
				EmailEngagementScore: 35, LinkedInEngagement: false, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_003", Company: "Enterprise Solutions Corp", Industry: "finance", EmployeeCount: 5000,
			ContactName: "Jennifer Williams", ContactTitle: "CTO",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 62, DemoRequested: true, WhitepaperDownloads: 5,
				EmailEngagementScore: 92, LinkedInEngagement: true, FreeTrialStarted: true,
			},
		},
		{
			ID: "lead_004", Company: "LocalRetail Co", Industry: "retail", EmployeeCount: 50,
			ContactName: "Robert Martinez", ContactTitle: "IT Manager",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 3, DemoRequested: false, WhitepaperDownloads: 0,
				EmailEngagementScore: 15, LinkedInEngagement: false, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_005", Company: "HealthCare Systems Inc", Industry: "healthcare", EmployeeCount: 1200,
			ContactName: "Dr. Emily Brown", ContactTitle: "Chief Medical Information Officer",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 38, DemoRequested: true, WhitepaperDownloads: 4,
				EmailEngagementScore: 78, LinkedInEngagement: true, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_006", Company: "EduTech Learning", Industry: "education", EmployeeCount: 180,
			ContactName: "David Kim", ContactTitle: "Director of Technology",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 22, DemoRequested: true, WhitepaperDownloads: 2,
				EmailEngagementScore: 65, LinkedInEngagement: false, FreeTrialStarted: true,
			},
		},
		{
			ID: "lead_007", Company: "ManufacturePlus", Industry: "manufacturing", EmployeeCount: 800,
			ContactName: "Lisa Anderson", ContactTitle: "VP of Operations",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 18, DemoRequested: false, WhitepaperDownloads: 2,
				EmailEngagementScore: 52, LinkedInEngagement: true, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_008", Company: "ConsultPro Group", Industry: "consulting", EmployeeCount: 45,
			ContactName: "Tom Wilson", ContactTitle: "Managing Partner",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 12, DemoRequested: false, WhitepaperDownloads: 1,
				EmailEngagementScore: 42, LinkedInEngagement: false, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_009", Company: "CloudNative Systems", Industry: "technology", EmployeeCount: 320,
			ContactName: "Amanda Lee", ContactTitle: "Engineering Manager",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 55, DemoRequested: true, WhitepaperDownloads: 4,
				EmailEngagementScore: 88, LinkedInEngagement: true, FreeTrialStarted: true,
			},
		},
		{
			ID: "lead_010", Company: "LegalTech Partners", Industry: "legal", EmployeeCount: 95,
			ContactName: "James Taylor", ContactTitle: "Senior Partner",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 28, DemoRequested: true, WhitepaperDownloads: 3,
				EmailEngagementScore: 70, LinkedInEngagement: true, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_011", Company: "MarketingGrowth Co", Industry: "marketing", EmployeeCount: 60,
			ContactName: "Rachel Green", ContactTitle: "CMO",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 15, DemoRequested: false, WhitepaperDownloads: 1,
				EmailEngagementScore: 48, LinkedInEngagement: false, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_012", Company: "DataScience Labs", Industry: "data_analytics", EmployeeCount: 450,
			ContactName: "Alex Turner", ContactTitle: "Head of Data",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 72, DemoRequested: true, WhitepaperDownloads: 6,
				EmailEngagementScore: 95, LinkedInEngagement: true, FreeTrialStarted: true,
			},
		},
		{
			ID: "lead_013", Company: "LogisticsFlow Inc", Industry: "logistics", EmployeeCount: 220,
			ContactName: "Kevin Brown", ContactTitle: "Operations Director",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 10, DemoRequested: false, WhitepaperDownloads: 1,
				EmailEngagementScore: 38, LinkedInEngagement: false, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_014", Company: "AgriSolutions Tech", Industry: "agriculture", EmployeeCount: 140,
			ContactName: "Maria Garcia", ContactTitle: "Head of Innovation",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 25, DemoRequested: true, WhitepaperDownloads: 2,
				EmailEngagementScore: 68, LinkedInEngagement: true, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_015", Company: "RealEstateDigital", Industry: "real_estate", EmployeeCount: 85,
			ContactName: "Chris Robinson", ContactTitle: "CIO",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 6, DemoRequested: false, WhitepaperDownloads: 0,
				EmailEngagementScore: 22, LinkedInEngagement: false, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_016", Company: "InsuranceAI Corp", Industry: "insurance", EmployeeCount: 1500,
			ContactName: "Patricia Moore", ContactTitle: "SVP of Technology",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 48, DemoRequested: true, WhitepaperDownloads: 5,
				EmailEngagementScore: 82, LinkedInEngagement: true, FreeTrialStarted: true,
			},
		},
		{
			ID: "lead_017", Company: "ContentMedia Group", Industry: "media", EmployeeCount: 200,
			ContactName: "Brian Clark", ContactTitle: "VP of Digital",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 20, DemoRequested: false, WhitepaperDownloads: 2,
				EmailEngagementScore: 55, LinkedInEngagement: true, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_018", Company: "EnergyOptimize Systems", Industry: "energy", EmployeeCount: 650,
			ContactName: "Susan White", ContactTitle: "Chief Innovation Officer",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 42, DemoRequested: true, WhitepaperDownloads: 4,
				EmailEngagementScore: 80, LinkedInEngagement: true, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_019", Company: "FoodTech Delivery", Industry: "food_delivery", EmployeeCount: 110,
			ContactName: "Daniel Nguyen", ContactTitle: "Tech Lead",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 14, DemoRequested: false, WhitepaperDownloads: 1,
				EmailEngagementScore: 45, LinkedInEngagement: false, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_020", Company: "TravelCloud Platforms", Industry: "travel", EmployeeCount: 380,
			ContactName: "Michelle Davis", ContactTitle: "Director of Engineering",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 35, DemoRequested: true, WhitepaperDownloads: 3,
				EmailEngagementScore: 75, LinkedInEngagement: true, FreeTrialStarted: true,
			},
		},
		{
			ID: "lead_021", Company: "SmallOffice Tools", Industry: "technology", EmployeeCount: 8,
			ContactName: "John Smith", ContactTitle: "Founder",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 2, DemoRequested: false, WhitepaperDownloads: 0,
				EmailEngagementScore: 10, LinkedInEngagement: false, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_022", Company: "MidMarket Dynamics", Industry: "saas", EmployeeCount: 420,
			ContactName: "Karen Johnson", ContactTitle: "VP of Product",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 58, DemoRequested: true, WhitepaperDownloads: 5,
				EmailEngagementScore: 90, LinkedInEngagement: true, FreeTrialStarted: true,
			},
		},
		{
			ID: "lead_023", Company: "BioTech Research", Industry: "healthcare", EmployeeCount: 280,
			ContactName: "Dr. Richard Evans", ContactTitle: "Director of IT",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 30, DemoRequested: true, WhitepaperDownloads: 3,
				EmailEngagementScore: 72, LinkedInEngagement: true, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_024", Company: "AutoParts Distribution", Industry: "manufacturing", EmployeeCount: 550,
			ContactName: "Mark Thompson", ContactTitle: "COO",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 16, DemoRequested: false, WhitepaperDownloads: 1,
				EmailEngagementScore: 50, LinkedInEngagement: false, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_025", Company: "FinanceAI Solutions", Industry: "finance", EmployeeCount: 920,
			ContactName: "Angela Martinez", ContactTitle: "Chief Data Officer",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 68, DemoRequested: true, WhitepaperDownloads: 7,
				EmailEngagementScore: 94, LinkedInEngagement: true, FreeTrialStarted: true,
			},
		},
		{
			ID: "lead_026", Company: "RetailChain Plus", Industry: "retail", EmployeeCount: 2500,
			ContactName: "Steven Parker", ContactTitle: "SVP of Technology",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 52, DemoRequested: true, WhitepaperDownloads: 4,
				EmailEngagementScore: 84, LinkedInEngagement: true, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_027", Company: "NonprofitTech Org", Industry: "nonprofit", EmployeeCount: 75,
			ContactName: "Laura Wilson", ContactTitle: "Technology Director",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 9, DemoRequested: false, WhitepaperDownloads: 1,
				EmailEngagementScore: 32, LinkedInEngagement: false, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_028", Company: "CyberSecurity Pro", Industry: "technology", EmployeeCount: 340,
			ContactName: "Michael Chang", ContactTitle: "CISO",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 46, DemoRequested: true, WhitepaperDownloads: 5,
				EmailEngagementScore: 86, LinkedInEngagement: true, FreeTrialStarted: true,
			},
		},
		{
			ID: "lead_029", Company: "HospitalityTech Inc", Industry: "hospitality", EmployeeCount: 190,
			ContactName: "Jessica Adams", ContactTitle: "IT Manager",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 11, DemoRequested: false, WhitepaperDownloads: 1,
				EmailEngagementScore: 40, LinkedInEngagement: false, FreeTrialStarted: false,
			},
		},
		{
			ID: "lead_030", Company: "GreenEnergy Ventures", Industry: "energy", EmployeeCount: 410,
			ContactName: "Andrew Miller", ContactTitle: "VP of Engineering",
			Signals: model.LeadSignals{
				WebsiteVisits30d: 40, DemoRequested: true, WhitepaperDownloads: 4,
				EmailEngagementScore: 79, LinkedInEngagement: true, FreeTrialStarted: true,
			},
		},
	}
}

func intp(v int) *int { return &v }
