package v1

import "github.com/shenikar/safetrail_monitoring/internal/models"

// DTOToProfileModel преобразует DTO сохранения профиля в доменную модель
func DTOToProfileModel(dto SaveProfileRequest) *models.UserProfile {
	contacts := make([]models.EmergencyContact, len(dto.EmergencyContacts))
	for i, c := range dto.EmergencyContacts {
		contacts[i] = models.EmergencyContact{Name: c.Name, Phone: c.Phone}
	}
	return &models.UserProfile{
		UserID:            dto.UserID,
		Name:              dto.Name,
		Phone:             dto.Phone,
		RiskThreshold:     dto.RiskThreshold,
		CheckInInterval:   dto.CheckInInterval,
		OffRouteTolerance: dto.OffRouteTolerance,
		EmergencyContacts: contacts,
	}
}

// ModelToProfileResponse преобразует доменную модель профиля в DTO для ответа
func ModelToProfileResponse(model *models.UserProfile) *ProfileResponse {
	contacts := make([]EmergencyContactDTO, len(model.EmergencyContacts))
	for i, c := range model.EmergencyContacts {
		contacts[i] = EmergencyContactDTO{Name: c.Name, Phone: c.Phone}
	}
	return &ProfileResponse{
		UserID:            model.UserID,
		Name:              model.Name,
		Phone:             model.Phone,
		RiskThreshold:     model.RiskThreshold,
		CheckInInterval:   model.CheckInInterval,
		OffRouteTolerance: model.OffRouteTolerance,
		EmergencyContacts: contacts,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

// DTOToJourneyRequest преобразует DTO запуска поездки в доменную модель
func DTOToJourneyRequest(dto StartJourneyRequest) *models.JourneyRequest {
	req := &models.JourneyRequest{
		UserID:        dto.UserID,
		TransportMode: dto.TransportMode,
	}
	if dto.StartLocation != nil {
		req.StartLocation = models.Location{Latitude: dto.StartLocation.Latitude, Longitude: dto.StartLocation.Longitude}
	}
	if dto.EndLocation != nil {
		req.EndLocation = models.Location{Latitude: dto.EndLocation.Latitude, Longitude: dto.EndLocation.Longitude}
	}
	return req
}

// ModelToCaseResponse преобразует кейс эскалации в DTO для ответа
func ModelToCaseResponse(model *models.EscalationCase) *CaseResponse {
	resp := &CaseResponse{
		ID:                     model.ID,
		UserID:                 model.UserID,
		Cause:                  string(model.Cause),
		State:                  string(model.State),
		Message:                model.Message,
		OpenedAt:               model.OpenedAt,
		ContactsNotifiedAt:     model.ContactsNotifiedAt,
		AuthoritiesContactedAt: model.AuthoritiesContactedAt,
		ResolvedAt:             model.ResolvedAt,
	}
	if model.Location != nil {
		resp.Location = &LocationDTO{Latitude: model.Location.Latitude, Longitude: model.Location.Longitude}
	}
	if model.Resolution != nil {
		resp.Resolution = string(*model.Resolution)
	}
	return resp
}

// ModelToRouteResponse преобразует разрешенный маршрут в DTO для ответа
func ModelToRouteResponse(model *models.ResolvedRoute) *RouteResponse {
	points := make([]LocationDTO, len(model.Points))
	for i, p := range model.Points {
		points[i] = LocationDTO{Latitude: p.Latitude, Longitude: p.Longitude}
	}
	return &RouteResponse{
		Points:   points,
		Distance: model.Distance,
		Duration: model.Duration,
		Degraded: model.Degraded,
	}
}
