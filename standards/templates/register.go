// Package templates registers the rule profile of every supported template
// with the standards package. The init() here runs when any package imports
// standards/templates, which keeps the profile table out of the standards
// package itself. Production code imports it for side effects; tests in
// package standards use templates_import_test.go for the blank import.
package templates

import "github.com/openstudio-standards/osstd/standards"

// Area above which a nonresidential baseline moves from packaged single-zone
// systems to multizone systems.
const (
	baseAreaLimitFt2 = 75000.0
	prmAreaLimitFt2  = 25000.0
)

// infiltrationAt75Pa is the whole-building air leakage assumed for every
// template, in cfm per ft2 of exterior surface at 75 Pa.
const infiltrationAt75Pa = 1.8

// necbInfiltration is 0.25 L/s per m2 of exterior above-grade envelope.
const necbInfiltration = 0.00025

func ashrae(app string) standards.Profile {
	return standards.Profile{
		Family:                      standards.FamilyASHRAE901,
		BaselineAreaLimitFt2:        baseAreaLimitFt2,
		HeatedOnly:                  standards.HeatedOnlyAsNonresidential,
		Retail:                      standards.RetailNotHandled,
		InfiltrationCFMPerFt2At75Pa: infiltrationAt75Pa,
		Economizer:                  standards.EconomizerLimitsByZone,
		PTACApplication:             app,
	}
}

func ashraeTabled(typeByZone bool) standards.Profile {
	p := ashrae("Standard Size")
	p.DCV = standards.DCVLimits{WithoutEconomizerCFM: 3000, WithEconomizerCFM: 750}
	p.Economizer = standards.EconomizerLimitsFromTable
	p.EconomizerTypeByZone = typeByZone
	return p
}

func prm() standards.Profile {
	p := ashrae("")
	p.Family = standards.FamilyPRM
	p.BaselineAreaLimitFt2 = prmAreaLimitFt2
	p.HeatedOnly = standards.HeatedOnlyHeatingSystem
	p.Retail = standards.RetailSmallSystem
	p.PRM = true
	return p
}

func deer() standards.Profile {
	p := ashrae("")
	p.Family = standards.FamilyDEER
	p.DCV = standards.DCVLimits{WithoutEconomizerCFM: 0.01, WithEconomizerCFM: 0.01}
	p.Economizer = standards.EconomizerLimitsDEER
	return p
}

func necb() standards.Profile {
	return standards.Profile{
		Family:                      standards.FamilyNECB,
		BaselineAreaLimitFt2:        baseAreaLimitFt2,
		InfiltrationCFMPerFt2At75Pa: infiltrationAt75Pa,
		InfiltrationM3PerSPerM2:     necbInfiltration,
		NECB:                        true,
	}
}

func init() {
	standards.Register("90.1-2004", ashrae("New Construction"))
	standards.Register("90.1-2007", ashrae("New Construction"))
	standards.Register("90.1-2010", ashrae("Standard Size"))
	standards.Register("90.1-2013", ashraeTabled(false))
	standards.Register("90.1-2016", ashraeTabled(false))
	standards.Register("90.1-2019", ashraeTabled(true))

	standards.Register("90.1-PRM", prm())
	standards.Register("90.1-PRM-2019", prm())

	d179 := ashrae("")
	d179.Family = standards.Family179D
	d179.BaselineAreaLimitFt2 = prmAreaLimitFt2
	d179.HeatedOnly = standards.HeatedOnlyHeatingSystem
	d179.Retail = standards.RetailAsNonresidential
	standards.Register("179D 90.1-2007", d179)

	for _, v := range []string{"Pre-1975", "1985", "1996", "2003", "2007", "2011", "2014", "2015", "2017", "2020"} {
		standards.Register("DEER "+v, deer())
	}

	for _, v := range []string{"Pre-1980", "1980-2004"} {
		p := ashrae("")
		p.Family = standards.FamilyDOERef
		standards.Register("DOE Ref "+v, p)
	}

	zne := ashraeTabled(false)
	zne.Family = standards.FamilyZNE
	zne.PTACApplication = ""
	zne.DCV = standards.DCVLimits{WithoutEconomizerCFM: 1500, WithEconomizerCFM: 375}
	zne.Economizer = standards.EconomizerLimitsZNE
	standards.Register("NREL ZNE Ready 2017", zne)

	for _, v := range []string{"NECB2011", "NECB2015", "NECB2017", "NECB2020"} {
		standards.Register(v, necb())
	}
}
