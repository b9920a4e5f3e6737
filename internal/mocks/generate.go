package mocks

//go:generate mockery --name LedgerStore --srcpkg github.com/sonijitendra/vehicle-registrations/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name GrowthSource --srcpkg github.com/sonijitendra/vehicle-registrations/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name MetricsStore --srcpkg github.com/sonijitendra/vehicle-registrations/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Source --srcpkg github.com/sonijitendra/vehicle-registrations/internal/ingestion --output ./ingestion --outpkg ingestionmocks --with-expecter
//go:generate mockery --name Loader --srcpkg github.com/sonijitendra/vehicle-registrations/internal/ingestion --output ./ingestion --outpkg ingestionmocks --with-expecter
